package depotassign

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type ArrayStringFlags []string

func (f *ArrayStringFlags) String() string {
	return strings.Join(*f, ",")
}

func (f *ArrayStringFlags) Set(value string) error {
	*f = append(*f, value)
	return nil
}

type ArrayIntFlags []int

func (f *ArrayIntFlags) String() string {
	parts := make([]string, len(*f))
	for i, v := range *f {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (f *ArrayIntFlags) Set(value string) error {
	v, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*f = append(*f, v)
	return nil
}

type ArrayFloatFlags []float64

func (f *ArrayFloatFlags) String() string {
	parts := make([]string, len(*f))
	for i, v := range *f {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return strings.Join(parts, ",")
}

func (f *ArrayFloatFlags) Set(value string) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	*f = append(*f, v)
	return nil
}

func SanitizeJsonArrayLineBreaks(json string) string {
	res := fmt.Sprintf("%s", json)
	var numbers = regexp.MustCompile(`\s*([0-9]+),\s+([0-9]+)(,)?`)
	var brackets = regexp.MustCompile(`\[(([0-9]+,)+[0-9]+)\s+\](,?)(\s+)`)
	for numbers.MatchString(res) {
		res = numbers.ReplaceAllString(res, "$1,$2$3")
	}
	for brackets.MatchString(res) {
		res = brackets.ReplaceAllString(res, "[$1]$3$4")
	}
	return res
}
