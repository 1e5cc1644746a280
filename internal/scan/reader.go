package scan

import (
	"bufio"
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Extension is the file extension of analyzer scan exports.
const Extension = ".asd"

// ErrNoSamples indicates that a scan file did not contain a single usable row.
var ErrNoSamples = errors.New("no valid samples")

var (
	unitPattern = regexp.MustCompile(`(?i)\b(ghz|mhz|khz|hz)\b`)
	z0Pattern   = regexp.MustCompile(`(?i)\bz0\s*[=:]\s*([0-9]+(?:\.[0-9]+)?)`)

	unitMultipliers = map[string]float64{
		"hz":  1,
		"khz": 1e3,
		"mhz": 1e6,
		"ghz": 1e9,
	}
)

// WithLogger sets the logger used to report skipped rows and files.
func WithLogger(logger *slog.Logger) func(*Reader) {
	return func(r *Reader) {
		r.logger = logger
	}
}

// WithReferenceImpedance sets Z0 used when a file carries impedance but does
// not state its own reference impedance.
func WithReferenceImpedance(z0 float64) func(*Reader) {
	return func(r *Reader) {
		r.z0 = z0
	}
}

// Reader parses analyzer scan files. Parsing is tolerant: header lines are
// skipped, malformed rows are reported and dropped, and unreadable files are
// excluded from the result instead of failing the whole run.
type Reader struct {
	logger *slog.Logger
	z0     float64
}

// NewReader creates a new Reader
func NewReader(options ...func(*Reader)) *Reader {
	r := Reader{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		z0:     DefaultReferenceImpedance,
	}

	for _, option := range options {
		option(&r)
	}

	return &r
}

// Discover returns paths of all scan files in dir sorted by file name.
// An empty directory yields an empty result; a missing or unreadable
// directory is an error.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading scan directory '%s': %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), Extension) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	slices.Sort(paths)
	return paths, nil
}

// ReadDir discovers and parses all scan files in dir.
func (r *Reader) ReadDir(dir string) ([]*Scan, error) {
	paths, err := Discover(dir)
	if err != nil {
		return nil, err
	}

	scans := make([]*Scan, 0, len(paths))
	for _, path := range paths {
		s, err := r.ReadFile(path)
		if err != nil {
			r.logger.Warn("excluding scan file", slog.String("path", path), slog.String("reason", err.Error()))
			continue
		}
		scans = append(scans, s)
	}

	if len(scans) == 0 {
		r.logger.Warn("no valid scan files found", slog.String("directory", dir))
	}
	return scans, nil
}

// ReadFile parses a single scan file. The scan is labelled with the file name.
func (r *Reader) ReadFile(path string) (s *Scan, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scan file: %w", err)
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = fmt.Errorf("closing scan file: %w", cErr)
		}
	}()

	if s, err = r.Parse(f, filepath.Base(path)); err != nil {
		return nil, err
	}
	s.Path = path
	return s, nil
}

// Parse reads a scan in either the JSON export format or the plain text
// column format.
func (r *Reader) Parse(src io.Reader, name string) (*Scan, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("reading scan: %w", err)
	}

	p := parser{
		logger: r.logger.With(slog.String("file", name)),
		scan: &Scan{
			Name:               name,
			ReferenceImpedance: r.z0,
		},
	}

	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		err = p.parseJSON(trimmed)
	} else {
		err = p.parseText(data)
	}
	if err != nil {
		return nil, err
	}

	if len(p.scan.Samples) == 0 {
		return nil, fmt.Errorf("parsing '%s': %w", name, ErrNoSamples)
	}

	byFrequency := func(a, b Sample) int { return cmp.Compare(a.Frequency, b.Frequency) }
	if !slices.IsSortedFunc(p.scan.Samples, byFrequency) {
		p.logger.Warn("rows are not ordered by frequency, sorting")
		slices.SortStableFunc(p.scan.Samples, byFrequency)
	}

	return p.scan, nil
}

type parser struct {
	logger *slog.Logger
	scan   *Scan
}

type asdDocument struct {
	Z0           *float64          `json:"z0"`
	Measurements []json.RawMessage `json:"measurements"`
}

// asdMeasurement is a single row of the JSON export. Frequency is in MHz.
type asdMeasurement struct {
	Frequency  *float64 `json:"fq"`
	Resistance *float64 `json:"r"`
	Reactance  *float64 `json:"x"`
	SWR        *float64 `json:"swr"`
}

func (p *parser) parseJSON(data []byte) error {
	var doc asdDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decoding scan document: %w", err)
	}

	if doc.Z0 != nil {
		if *doc.Z0 <= 0 || !isFinite(*doc.Z0) {
			return fmt.Errorf("invalid reference impedance %v: %w", *doc.Z0, ErrOutOfRange)
		}
		p.scan.ReferenceImpedance = *doc.Z0
	}

	for i, raw := range doc.Measurements {
		var m asdMeasurement
		if err := json.Unmarshal(raw, &m); err != nil {
			p.skip(i+1, err)
			continue
		}
		if m.Frequency == nil {
			p.skip(i+1, errors.New("missing frequency"))
			continue
		}

		sample, err := p.sample(*m.Frequency*unitMultipliers["mhz"], m.Resistance, m.Reactance, m.SWR)
		if err != nil {
			p.skip(i+1, err)
			continue
		}
		p.scan.Samples = append(p.scan.Samples, sample)
	}

	return nil
}

func (p *parser) parseText(data []byte) error {
	multiplier := unitMultipliers["mhz"]
	dataStarted := false

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), len(data)+1)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if isComment(text) {
			multiplier = p.directives(text, multiplier)
			continue
		}

		fields := splitFields(text)
		if !dataStarted {
			if len(fields) == 0 || !isNumber(fields[0]) {
				multiplier = p.directives(text, multiplier)
				continue
			}
			dataStarted = true
		}

		values, ok := parseNumbers(fields)
		if !ok {
			p.skip(line, errors.New("non-numeric value"))
			continue
		}

		var sample Sample
		var err error
		switch freq := values[0] * multiplier; len(values) {
		case 2:
			sample, err = p.sample(freq, nil, nil, &values[1])
		case 3:
			sample, err = p.sample(freq, &values[1], &values[2], nil)
		default:
			if len(values) < 2 {
				err = fmt.Errorf("expected at least 2 columns, got %d", len(values))
				break
			}
			sample, err = p.sample(freq, &values[1], &values[2], &values[3])
		}
		if err != nil {
			p.skip(line, err)
			continue
		}
		p.scan.Samples = append(p.scan.Samples, sample)
	}

	if err := sc.Err(); err != nil {
		return fmt.Errorf("scanning lines: %w", err)
	}
	return nil
}

// directives picks up the frequency unit and reference impedance declared
// in header lines, returning the frequency multiplier in effect.
func (p *parser) directives(text string, multiplier float64) float64 {
	if m := z0Pattern.FindStringSubmatch(text); m != nil {
		if z0, err := strconv.ParseFloat(m[1], 64); err == nil && z0 > 0 {
			p.scan.ReferenceImpedance = z0
		}
		text = strings.Replace(text, m[0], "", 1)
	}
	if m := unitPattern.FindStringSubmatch(text); m != nil {
		multiplier = unitMultipliers[strings.ToLower(m[1])]
	}
	return multiplier
}

// sample builds a Sample, preferring a VSWR value given directly over one
// derived from the impedance.
func (p *parser) sample(freq float64, r, x, swr *float64) (Sample, error) {
	if !isFinite(freq) || freq <= 0 {
		return Sample{}, fmt.Errorf("frequency %v: %w", freq, ErrOutOfRange)
	}

	s := Sample{Frequency: freq}
	if r != nil && x != nil {
		s.Resistance = r
		s.Reactance = x
	}

	switch {
	case swr != nil:
		if !ValidVSWR(*swr) {
			return Sample{}, fmt.Errorf("vswr %v: %w", *swr, ErrOutOfRange)
		}
		s.VSWR = *swr

	case r != nil && x != nil:
		v, err := VSWRFromImpedance(*r, *x, p.scan.ReferenceImpedance)
		if err != nil {
			return Sample{}, fmt.Errorf("impedance %v%+vj: %w", *r, *x, err)
		}
		s.VSWR = v

	default:
		return Sample{}, errors.New("neither vswr nor impedance present")
	}

	return s, nil
}

func (p *parser) skip(row int, reason error) {
	p.logger.Warn("skipping malformed row", slog.Int("row", row), slog.String("reason", reason.Error()))
}

func isComment(text string) bool {
	return strings.HasPrefix(text, "#") || strings.HasPrefix(text, ";") || strings.HasPrefix(text, "//")
}

func splitFields(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';'
	})
}

func isNumber(field string) bool {
	_, err := strconv.ParseFloat(field, 64)
	return err == nil
}

func parseNumbers(fields []string) ([]float64, bool) {
	if len(fields) == 0 {
		return nil, false
	}

	values := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, false
		}
		values[i] = v
	}
	return values, true
}
