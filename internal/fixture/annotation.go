package fixture

import (
	"bufio"
	"fmt"
	"strings"
)

const (
	errorKeyword  = "error"
	errorMarker   = "error: "
	expectKeyword = "expect"
	expectMarker  = "expect: "

	maxLineSize = 1024 * 1024
)

// Kind tags an annotation.
type Kind int

const (
	KindExpect Kind = iota
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindExpect:
		return "expect"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Annotation is one expectation embedded in a fixture.
type Annotation struct {
	Kind    Kind
	Message string
	Line    int
}

// Expectations are the annotations of a fixture split by channel, in file order.
type Expectations struct {
	Results []string
	Errors  []string
}

// MalformedAnnotationError reports a line that mentions an annotation
// keyword without the separator that introduces its message.
type MalformedAnnotationError struct {
	Line   int
	Text   string
	Marker string
}

func (e *MalformedAnnotationError) Error() string {
	return fmt.Sprintf("line %d: %q is missing the %q separator", e.Line, strings.TrimSpace(e.Text), e.Marker)
}

// MalformedAnnotations collects every malformed line of a fixture.
type MalformedAnnotations []*MalformedAnnotationError

func (m MalformedAnnotations) Error() string {
	if len(m) == 1 {
		return "malformed annotation: " + m[0].Error()
	}
	msgs := make([]string, len(m))
	for i, e := range m {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d malformed annotations: %s", len(m), strings.Join(msgs, "; "))
}

// ExtractLine classifies a single line. The error check wins over the
// expect check, so a line mentioning both is an error annotation.
// ok is false for lines that carry no annotation.
func ExtractLine(line string) (a Annotation, ok bool, err error) {
	switch {
	case strings.Contains(line, errorKeyword):
		msg, found := messageAfter(line, errorMarker)
		if !found {
			return Annotation{}, false, &MalformedAnnotationError{Text: line, Marker: errorMarker}
		}
		return Annotation{Kind: KindError, Message: msg}, true, nil
	case strings.Contains(line, expectKeyword):
		msg, found := messageAfter(line, expectMarker)
		if !found {
			return Annotation{}, false, &MalformedAnnotationError{Text: line, Marker: expectMarker}
		}
		return Annotation{Kind: KindExpect, Message: msg}, true, nil
	default:
		return Annotation{}, false, nil
	}
}

func messageAfter(line, marker string) (string, bool) {
	_, after, found := strings.Cut(line, marker)
	if !found {
		return "", false
	}
	return strings.TrimSpace(after), true
}

// Annotations scans fixture text and returns its annotations in file order.
// Malformed lines do not stop the scan; they are returned together as a
// MalformedAnnotations error after the well-formed annotations.
func Annotations(text string) ([]Annotation, error) {
	var (
		annotations []Annotation
		malformed   MalformedAnnotations
	)

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		a, ok, err := ExtractLine(scanner.Text())
		if err != nil {
			if m, isMalformed := err.(*MalformedAnnotationError); isMalformed {
				m.Line = lineNo
				malformed = append(malformed, m)
				continue
			}
			return nil, err
		}
		if ok {
			a.Line = lineNo
			annotations = append(annotations, a)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan fixture: %w", err)
	}

	if len(malformed) > 0 {
		return annotations, malformed
	}
	return annotations, nil
}

// Extract returns the expected results and errors of a fixture. Any
// malformed annotation makes the whole fixture unusable and is returned as
// a MalformedAnnotations error.
func Extract(text string) (Expectations, error) {
	annotations, err := Annotations(text)
	if err != nil {
		return Expectations{}, err
	}

	var exp Expectations
	for _, a := range annotations {
		switch a.Kind {
		case KindError:
			exp.Errors = append(exp.Errors, a.Message)
		case KindExpect:
			exp.Results = append(exp.Results, a.Message)
		}
	}
	return exp, nil
}
