package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
)

// maxBodyBytes caps JSON request bodies at 1 MiB.
const maxBodyBytes = 1 << 20

// Request is what handlers receive: the inbound *http.Request plus path and
// body helpers.
type Request struct {
	*http.Request
}

// GetParam returns the named path parameter, or "" when the route has none.
func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

// GetParamInt64 parses the named path parameter as a base-10 int64.
func (r *Request) GetParamInt64(key string) (int64, error) {
	v, err := strconv.ParseInt(r.GetParam(key), 10, 64)
	if err != nil {
		return 0, goerror.NewInvalidFormat("param must integer value")
	}
	return v, nil
}

// DecodeBody reads exactly one JSON value into dst. Unknown fields are
// ignored; an empty body, malformed JSON or trailing data is INVALID_FORMAT.
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Body == nil || r.Body == http.NoBody {
		return goerror.NewInvalidFormat()
	}
	if err := decodeSingleJSON(io.LimitReader(r.Body, maxBodyBytes), dst); err != nil {
		return goerror.NewInvalidFormat()
	}
	return nil
}

var errTrailingData = errors.New("trailing data after json value")

func decodeSingleJSON(src io.Reader, dst any) error {
	dec := json.NewDecoder(src)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errTrailingData
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}
