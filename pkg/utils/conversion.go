package utils

import "strconv"

// ParseID turns a path parameter into a row id. Anything that is not a
// positive integer reports ok=false.
func ParseID(str string) (id uint64, ok bool) {
	val, err := strconv.ParseUint(str, 10, 64)
	if err != nil || val == 0 {
		return 0, false
	}
	return val, true
}
