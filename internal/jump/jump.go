// Package jump assigns short keyboard labels to candidate positions
// so a user can jump to any of them in one or two keystrokes, the
// same two-stage scheme spec.md's jump assigner describes: label
// every candidate with a single alphabet character while there are
// few enough of them, and once candidates outnumber the alphabet,
// fall back to two-character labels formed by partitioning candidates
// into alphabet-sized buckets and spelling out bucket+offset.
package jump

import "github.com/selectron/selectron/internal/selection"

// CharIndex mirrors selection.CharIndex.
type CharIndex = selection.CharIndex

// Label is the key sequence a user types to jump to a candidate.
type Label string

// Candidate is a single jump target.
type Candidate struct {
	Position CharIndex
}

// Assignment pairs a Candidate with its Label.
type Assignment struct {
	Candidate Candidate
	Label     Label
}

// DefaultAlphabet is the home-row-first jump alphabet keystorm-style
// editors commonly default to; config.Config.JumpAlphabet overrides
// it per spec.md's ambient configuration.
const DefaultAlphabet = "asdfghjklqwertyuiopzxcvbnm"

// Assign labels every candidate using alphabet, in input order. If
// len(candidates) <= len(alphabet), each candidate gets a single-char
// label (stage one). Otherwise every candidate gets a two-char label:
// the first char identifies a bucket of up to len(alphabet)
// candidates, the second char identifies the candidate within that
// bucket (stage two). Returns nil if alphabet is empty.
func Assign(candidates []Candidate, alphabet string) []Assignment {
	letters := []rune(alphabet)
	if len(letters) == 0 || len(candidates) == 0 {
		return nil
	}

	out := make([]Assignment, len(candidates))

	if len(candidates) <= len(letters) {
		for i, c := range candidates {
			out[i] = Assignment{Candidate: c, Label: Label(string(letters[i]))}
		}
		return out
	}

	bucketSize := len(letters)
	for i, c := range candidates {
		bucket := i / bucketSize
		offset := i % bucketSize
		var label string
		if bucket < len(letters) {
			label = string(letters[bucket]) + string(letters[offset])
		} else {
			// Alphabet exhausted even for bucket selection; candidates
			// beyond letters*letters are left unreachable by a short
			// label and get a longest-prefix label instead so every
			// candidate still resolves to something, just not
			// necessarily a unique two-key sequence.
			label = string(letters[offset])
		}
		out[i] = Assignment{Candidate: c, Label: Label(label)}
	}
	return out
}

// Resolve returns the candidate assigned to label, if any.
func Resolve(assignments []Assignment, label Label) (Candidate, bool) {
	for _, a := range assignments {
		if a.Label == label {
			return a.Candidate, true
		}
	}
	return Candidate{}, false
}

// Prefixes returns the set of labels for which typing typed so far is
// a strict prefix, used to let the input handler know whether to keep
// waiting for a second key.
func Prefixes(assignments []Assignment, typed Label) []Label {
	var out []Label
	for _, a := range assignments {
		if len(a.Label) > len(typed) && a.Label[:len(typed)] == typed {
			out = append(out, a.Label)
		}
	}
	return out
}
