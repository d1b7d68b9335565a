package util

// ContainsString checks if the slice contains the string value.
func ContainsString(slc []string, item string) bool {
	for _, v := range slc {
		if v == item {
			return true
		}
	}
	return false
}
