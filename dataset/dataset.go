// Package dataset reads transaction records and vocabularies from text.
//
// Transactions: one per line, whitespace-separated integer item ids.
// Identical transactions are merged into one counted entry of an
// fptree.Multiset; item order and repeated ids inside a line are irrelevant.
// Blank lines are skipped.
//
// Vocabulary: one "<id> <term>" pair per line. A later line for the same id
// replaces the earlier term.
//
// Every malformed line of an input is reported, aggregated with
// hashicorp/go-multierror; nothing is returned for an input with errors.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/katalvlaran/fpgrowth/fptree"
)

// ErrMalformedLine is wrapped by every per-line parse error.
var ErrMalformedLine = errors.New("dataset: malformed line")

// maxLineBytes bounds a single input line.
const maxLineBytes = 16 << 20

// Vocabulary maps item ids to display terms.
type Vocabulary map[fptree.Item]string

// ReadTransactions parses r into a deduplicated multiset.
func ReadTransactions(r io.Reader) (*fptree.Multiset, error) {
	ms := fptree.NewMultiset()
	var result *multierror.Error

	err := scanLines(r, func(line int, fields []string) {
		items := make([]fptree.Item, 0, len(fields))
		for _, f := range fields {
			id, err := strconv.Atoi(f)
			if err != nil {
				result = multierror.Append(result,
					fmt.Errorf("%w %d: item %q is not an integer id", ErrMalformedLine, line, f))
				return
			}
			items = append(items, fptree.Item(id))
		}
		if err := ms.Add(items, 1); err != nil {
			result = multierror.Append(result, fmt.Errorf("line %d: %w", line, err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("dataset: reading transactions: %w", err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return ms, nil
}

// ReadVocabulary parses r into a Vocabulary.
func ReadVocabulary(r io.Reader) (Vocabulary, error) {
	vocab := make(Vocabulary)
	var result *multierror.Error

	err := scanLines(r, func(line int, fields []string) {
		if len(fields) != 2 {
			result = multierror.Append(result,
				fmt.Errorf("%w %d: want \"<id> <term>\", got %d fields", ErrMalformedLine, line, len(fields)))
			return
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			result = multierror.Append(result,
				fmt.Errorf("%w %d: id %q is not an integer", ErrMalformedLine, line, fields[0]))
			return
		}
		vocab[fptree.Item(id)] = fields[1]
	})
	if err != nil {
		return nil, fmt.Errorf("dataset: reading vocabulary: %w", err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return vocab, nil
}

// LoadTransactions reads the transaction file at path.
func LoadTransactions(path string) (*fptree.Multiset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ms, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return ms, nil
}

// LoadVocabulary reads the vocabulary file at path.
func LoadVocabulary(path string) (Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	vocab, err := ReadVocabulary(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return vocab, nil
}

// scanLines calls fn with the 1-based number and fields of every non-blank line.
func scanLines(r io.Reader, fn func(line int, fields []string)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		fn(line, fields)
	}

	return sc.Err()
}
