// Package all links every multijson backend into the binary.
//
//	import _ "github.com/zoobzio/multijson/all"
package all

import (
	// Backends register themselves from init.
	_ "github.com/zoobzio/multijson/gojson"
	_ "github.com/zoobzio/multijson/jsoniter"
	_ "github.com/zoobzio/multijson/sonic"
)
