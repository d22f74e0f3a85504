package util

import "strconv"

// Round rounds v to the given number of decimal places using its exact binary
// value, with exact ties going to the even digit. 1.115 is stored just below
// the tie and rounds to 1.11; 0.125 is an exact tie and rounds to 0.12.
func Round(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}
