package lexicon

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// File names expected inside the lexicon data directory.
const (
	semTypesFile      = "noun_sem_types.tsv"
	frequenciesFile   = "word_frequencies.tsv"
	skipWordsFile     = "skip_words.txt"
	mannerAdverbsFile = "manner_adverbs.txt"
	unitsFile         = "measurement_units.txt"
)

// Load reads all lexicon files from dir and returns a fully populated
// Table. Loading is all-or-nothing: any missing or malformed file
// fails the whole load, so callers never observe a partial lexicon.
func Load(dir string) (*Table, error) {
	t := &Table{
		semTypes:      make(map[string]SemType),
		compoundHeads: make(map[string]string),
		frequencies:   make(map[string]float64),
		skipWords:     make(map[string]struct{}),
		mannerAdverbs: make(map[string]struct{}),
		units:         make(map[string]struct{}),
	}

	if err := loadSemTypes(filepath.Join(dir, semTypesFile), t); err != nil {
		return nil, fmt.Errorf("semantic types: %w", err)
	}
	if err := loadFrequencies(filepath.Join(dir, frequenciesFile), t); err != nil {
		return nil, fmt.Errorf("frequencies: %w", err)
	}
	if err := loadSet(filepath.Join(dir, skipWordsFile), t.skipWords); err != nil {
		return nil, fmt.Errorf("skip words: %w", err)
	}
	if err := loadSet(filepath.Join(dir, mannerAdverbsFile), t.mannerAdverbs); err != nil {
		return nil, fmt.Errorf("manner adverbs: %w", err)
	}
	if err := loadSet(filepath.Join(dir, unitsFile), t.units); err != nil {
		return nil, fmt.Errorf("measurement units: %w", err)
	}

	return t, nil
}

// loadSemTypes reads "word<TAB>type[<TAB>compound_head]" lines.
func loadSemTypes(path string, t *Table) error {
	return scanLines(path, func(lineNo int, line string) error {
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return fmt.Errorf("line %d: expected at least 2 tab-separated fields", lineNo)
		}
		st, ok := ParseSemType(strings.TrimSpace(fields[1]))
		if !ok {
			return fmt.Errorf("line %d: unknown semantic type %q", lineNo, fields[1])
		}
		word := Fold(strings.TrimSpace(fields[0]))
		t.semTypes[word] = st
		if len(fields) >= 3 {
			if head := Fold(strings.TrimSpace(fields[2])); head != "" {
				t.compoundHeads[word] = head
			}
		}
		return nil
	})
}

// loadFrequencies reads "word<TAB>zipf" lines.
func loadFrequencies(path string, t *Table) error {
	return scanLines(path, func(lineNo int, line string) error {
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			return fmt.Errorf("line %d: expected 2 tab-separated fields", lineNo)
		}
		zipf, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return fmt.Errorf("line %d: bad frequency: %w", lineNo, err)
		}
		t.frequencies[Fold(strings.TrimSpace(fields[0]))] = zipf
		return nil
	})
}

// loadSet reads one word per line into a membership set.
func loadSet(path string, set map[string]struct{}) error {
	return scanLines(path, func(_ int, line string) error {
		set[Fold(line)] = struct{}{}
		return nil
	})
}

// scanLines streams non-empty, non-comment lines of a file to fn.
func scanLines(path string, fn func(lineNo int, line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(lineNo, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}
