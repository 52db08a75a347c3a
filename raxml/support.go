package raxml

import (
	"strconv"
)

// ParseSupports returns branch support values of a newick string, in the
// order they appear in the text. Only supports written right after a
// closing bracket and followed by a branch length are recognised.
func ParseSupports(newick string) ([]float64, error) {
	matches := supportRe.FindAllStringSubmatch(newick, -1)
	supports := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, &ParseError{Line: 1, Msg: "bad support value", Err: err}
		}
		supports = append(supports, v)
	}
	return supports, nil
}

// BootstrapSupports reads branch supports from the first tree of a
// support file (e.g. .raxml.support).
func BootstrapSupports(fn string) ([]float64, error) {
	line, err := ReadFirstLine(fn)
	if err != nil {
		return nil, err
	}
	supports, err := ParseSupports(line)
	return supports, withPath(err, fn)
}
