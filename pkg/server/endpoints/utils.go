package endpoints

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/doodlesbykumbi/forms-in-go/pkg/model"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// validObjType reports whether a raw path segment names one of the
// annotatable host object types.
func validObjType(raw string) bool {
	_, err := model.ObjectTypeString(raw)
	return err == nil
}

// parseID accepts a JSON id given either as a number or as a decimal
// string, which is how different clients send group and user ids.
func parseID(raw json.RawMessage) (int64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		var s string
		if serr := json.Unmarshal(raw, &s); serr != nil {
			return 0, err
		}
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	}
	return strconv.ParseInt(n.String(), 10, 64)
}

// rawText renders a raw JSON value for storage in a text column. Quoted
// strings are unwrapped so timestamps sent either way store identically.
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func containsInt64(haystack []int64, needle int64) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
