package timeentry

import "errors"

var ErrMalformedResponse = errors.New("upstream returned a malformed payload")
