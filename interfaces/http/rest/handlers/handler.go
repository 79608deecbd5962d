package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/Kian-Chen/DSADesign/pkg/common"
	pkgerrors "github.com/Kian-Chen/DSADesign/pkg/errors"
	"github.com/Kian-Chen/DSADesign/pkg/utils"
)

// maxBodyBytes bounds every JSON request body
const maxBodyBytes = 64 << 10

// PositionText is an insert position as typed by a user. It accepts JSON
// strings and numbers; the list layer coerces the text.
type PositionText string

// UnmarshalJSON unquotes strings and writes numbers out as plain integers,
// truncating fractions, so 1e2 becomes "100"
func (p *PositionText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PositionText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*p = PositionText(strconv.FormatInt(i, 10))
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return err
	}
	*p = PositionText(strconv.FormatFloat(math.Trunc(f), 'f', 0, 64))
	return nil
}

// decode parses and validates a request body
func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := common.ParseJSONBody(w, r, v, maxBodyBytes); err != nil {
		return pkgerrors.NewValidationError("Invalid request body: " + err.Error())
	}
	if err := utils.ValidateStruct(v); err != nil {
		return pkgerrors.NewValidationError("Validation error: " + err.Error())
	}
	return nil
}

// queryInt reads an optional integer query parameter
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.NewValidationError(name + " must be an integer").WithDetails(map[string]interface{}{name: raw})
	}
	return n, nil
}
