package tson

import "github.com/tsonlib/tson/scan"

// Scanner is re-exported from the scan package: the per-call parse cursor a
// codec decodes from.
type Scanner = scan.Scanner
