package utils

// InSliceStringCS is a helper function to check whether the
// given slice string contains the given string value. This function
// is case sensitive.
func InSliceStringCS(slice []string, value string) bool {
	for _, v := range slice {
		if v == value {
			return true
		}
	}

	return false
}
