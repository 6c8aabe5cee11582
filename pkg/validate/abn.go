package validate

// abnWeights are the published weighting factors for the 11 digit
// Australian Business Number check.
var abnWeights = [11]int{10, 1, 3, 5, 7, 9, 11, 13, 15, 17, 19}

// ValidABN reports whether value is a well-formed ABN: exactly 11
// digits (spaces between groups are tolerated) whose weighted sum,
// after subtracting one from the leading digit, is divisible by 89.
func ValidABN(value string) bool {
	digits := make([]int, 0, 11)
	for _, r := range value {
		switch {
		case r == ' ':
			continue
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		default:
			return false
		}
	}
	if len(digits) != 11 {
		return false
	}

	digits[0]--
	sum := 0
	for i, d := range digits {
		sum += d * abnWeights[i]
	}
	return sum%89 == 0
}
