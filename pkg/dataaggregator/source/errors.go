package source

import "errors"

var UnsupportedSourceError = errors.New("source cannot handle this query")
