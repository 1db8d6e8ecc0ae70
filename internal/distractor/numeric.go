package distractor

import (
	"math"
	"regexp"
	"strconv"
)

var numberLiteral = regexp.MustCompile(`\d+(?:\.\d+)?`)

const maxNumericLiterals = 2

var perturbFactors = []float64{1.2, 0.8}

// numericVariants rewrites up to two numeric literals of answer by ±20%.
// Only the matched literal is replaced, never other copies of the same digits.
func numericVariants(answer string) []string {
	var out []string
	for _, loc := range numberLiteral.FindAllStringIndex(answer, maxNumericLiterals) {
		literal := answer[loc[0]:loc[1]]
		v, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			continue
		}
		for _, f := range perturbFactors {
			p := perturb(v, f)
			if p == literal {
				continue
			}
			out = append(out, answer[:loc[0]]+p+answer[loc[1]:])
		}
	}
	return out
}

// perturb scales v and rounds to an integer above magnitude 1, else to one decimal.
func perturb(v, factor float64) string {
	x := v * factor
	if math.Abs(v) > 1 {
		return strconv.FormatInt(int64(math.Round(x)), 10)
	}
	return strconv.FormatFloat(math.Round(x*10)/10, 'f', -1, 64)
}
