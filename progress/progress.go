package progress

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strconv"
)

// Parser extracts a completion percentage from one line of tool output.
type Parser interface {
	Parse(line string) (pct int, ok bool)
}

var percentRe = regexp.MustCompile(`(\d+)%`)

// Percent matches tools that print their own percentage, like rclone's
// --progress output.
type Percent struct{}

func (Percent) Parse(line string) (int, bool) {
	m := percentRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	pct, err := strconv.Atoi(m[1])
	if err != nil || pct > 100 {
		return 0, false
	}
	return pct, true
}

var (
	durationRe = regexp.MustCompile(`Duration: (\d{2}):(\d{2}):(\d{2})`)
	timeRe     = regexp.MustCompile(`time=(\d{2}):(\d{2}):(\d{2})`)
)

// TimeRatio matches ffmpeg's stderr chatter: the first "Duration:" line
// seeds the total, every later "time=" line becomes elapsed/total. Lines
// seen before the duration is known yield nothing.
type TimeRatio struct {
	total int // seconds
}

func (p *TimeRatio) Parse(line string) (int, bool) {
	if p.total == 0 {
		if m := durationRe.FindStringSubmatch(line); m != nil {
			p.total = toSeconds(m)
		}
	}
	m := timeRe.FindStringSubmatch(line)
	if m == nil || p.total == 0 {
		return 0, false
	}
	pct := toSeconds(m) * 100 / p.total
	if pct > 100 {
		pct = 100
	}
	return pct, true
}

func toSeconds(m []string) int {
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	s, _ := strconv.Atoi(m[3])
	return h*3600 + min*60 + s
}

// ffmpeg terminates its stats updates with \r instead of \n, so split on
// either.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Drain reads r line by line until EOF, reporting every parsed percentage
// that differs from the previously reported one. Identical consecutive
// values are suppressed to bound message-edit volume.
func Drain(r io.Reader, p Parser, report func(pct int)) error {
	scanner := bufio.NewScanner(r)
	scanner.Split(scanLines)
	prev := -1
	for scanner.Scan() {
		pct, ok := p.Parse(scanner.Text())
		if !ok || pct == prev {
			continue
		}
		prev = pct
		if report != nil {
			report(pct)
		}
	}
	return scanner.Err()
}
