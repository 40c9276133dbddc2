// Package orf finds the longest open reading frame of nucleotide sequences.
package orf

import "strings"

// Frames is the number of forward reading frames scanned.
const Frames = 3

// stop splits a translated strand into fragments.
const stop = "*"

// Translator maps a nucleotide sequence to one residue per complete codon,
// using '*' for stop codons. *geneticcode.Table implements it.
type Translator interface {
	Translate(seq string) (string, error)
}

// Best is the longest stop-free fragment found across the forward frames.
type Best struct {
	Fragment string
	Frame    int
}

// SelectLongest translates seq in frames 0, 1 and 2 and returns the longest
// stop-free fragment. Ties go to the earlier frame, and within a frame to the
// leftmost fragment. An empty sequence yields ("", 0). A translation error
// is returned as is.
func SelectLongest(seq string, tr Translator) (Best, error) {
	var best Best
	for frame := 0; frame < Frames; frame++ {
		var strand string
		if frame < len(seq) {
			var err error
			strand, err = tr.Translate(seq[frame:])
			if err != nil {
				return Best{}, err
			}
		}
		longest := LongestFragment(strand)
		if len(longest) > len(best.Fragment) {
			best = Best{Fragment: longest, Frame: frame}
		}
	}
	return best, nil
}

// LongestFragment returns the first longest fragment of a translated strand.
func LongestFragment(strand string) string {
	var longest string
	for _, f := range Fragments(strand) {
		if len(f) > len(longest) {
			longest = f
		}
	}
	return longest
}

// Fragments splits a translated strand at every stop symbol. Adjacent or
// boundary stops produce empty fragments.
func Fragments(strand string) []string {
	return strings.Split(strand, stop)
}
