package utils

import "fmt"

// ItemNumber formats a 1-based line position as the two-digit zero-padded
// sequence stored on order lines ("01", "02", ...). Callers keep the line
// count at two digits, so the values sort lexicographically in line order.
func ItemNumber(position int) string {
	return fmt.Sprintf("%02d", position)
}
