package endpoints

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/golang/glog"

	"github.com/psat-tools/psat-server/errortypes"
	"github.com/psat-tools/psat-server/metrics"
	"github.com/psat-tools/psat-server/util/jsonutil"
)

// readBody reads the whole request body, refusing anything larger than maxSize bytes. A
// maxSize of zero or less disables the limit.
func readBody(w http.ResponseWriter, r *http.Request, maxSize int64) ([]byte, error) {
	body := r.Body
	if maxSize > 0 {
		body = http.MaxBytesReader(w, r.Body, maxSize)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &errortypes.RequestTooLarge{Message: fmt.Sprintf("request size exceeded max size of %d bytes", maxSize)}
		}
		return nil, &errortypes.BadInput{Message: fmt.Sprintf("failed to read request body: %v", err)}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &errortypes.BadInput{Message: "request body is empty"}
	}
	return data, nil
}

// decodeBody unmarshals the request body into v. Decode failures are bad input.
func decodeBody(w http.ResponseWriter, r *http.Request, maxSize int64, v interface{}) error {
	data, err := readBody(w, r, maxSize)
	if err != nil {
		return err
	}
	if err := jsonutil.Unmarshal(data, v); err != nil {
		return &errortypes.BadInput{Message: err.Error()}
	}
	return nil
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, labels *metrics.Labels, status int, v interface{}) {
	out, err := jsonutil.Marshal(v)
	if err != nil {
		writeError(w, labels, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(out)
}

// writeError maps err to a status code, marks the request status on labels and writes the
// message as the response body.
func writeError(w http.ResponseWriter, labels *metrics.Labels, err error) {
	status := http.StatusInternalServerError
	labels.RequestStatus = metrics.RequestStatusErr

	switch errortypes.ReadCode(err) {
	case errortypes.BadInputErrorCode, errortypes.FailedToUnmarshalErrorCode:
		status = http.StatusBadRequest
		labels.RequestStatus = metrics.RequestStatusBadInput
	case errortypes.RequestTooLargeErrorCode:
		status = http.StatusRequestEntityTooLarge
		labels.RequestStatus = metrics.RequestStatusBadInput
	case errortypes.NotFoundErrorCode:
		status = http.StatusNotFound
		labels.RequestStatus = metrics.RequestStatusNotFound
	}

	w.WriteHeader(status)
	if status == http.StatusInternalServerError {
		glog.Errorf("%s Critical error: %v", labels.RType, err)
		fmt.Fprintf(w, "Critical error: %s\n", err.Error())
		return
	}

	if glog.V(2) {
		glog.Infof("%s Invalid request: %v", labels.RType, err)
	}
	fmt.Fprintf(w, "Invalid request: %s\n", err.Error())
}
