package loudness

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ImportSignature reads a two-column pressure signature from r: time in
// milliseconds in the first column, pressure in psf in the last. Columns may
// be separated by whitespace or commas; headerLines rows are skipped.
func ImportSignature(r io.Reader, headerLines int) (timeMS, pressure []float64, err error) {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		if line <= headerLines {
			continue
		}
		text := strings.TrimSpace(strings.ReplaceAll(scanner.Text(), ",", " "))
		if text == "" {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, nil, fmt.Errorf("loudness: line %d: expected two columns, got %d", line, len(fields))
		}
		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("loudness: line %d: parse time: %w", line, err)
		}
		p, err := strconv.ParseFloat(fields[len(fields)-1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("loudness: line %d: parse pressure: %w", line, err)
		}
		timeMS = append(timeMS, t)
		pressure = append(pressure, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("loudness: read signature: %w", err)
	}
	return timeMS, pressure, nil
}

// NWave synthesizes an idealized N-wave boom signature: a linear rise to
// +peak, a linear decay through zero to -peak over the wave duration, and a
// linear recovery. Used for mock fixtures and tests; real signatures come
// from upstream propagation runs.
func NWave(durationMS, peakPSF float64, n int) (timeMS, pressure []float64) {
	timeMS = make([]float64, n)
	pressure = make([]float64, n)

	// Pad the window with silence on both sides so the taper has room.
	span := 3 * durationMS
	rise := 0.05 * durationMS
	start := durationMS

	for i := 0; i < n; i++ {
		t := span * float64(i) / float64(n-1)
		timeMS[i] = t

		dt := t - start
		switch {
		case dt < 0 || dt > durationMS:
			pressure[i] = 0
		case dt < rise:
			pressure[i] = peakPSF * dt / rise
		case dt > durationMS-rise:
			pressure[i] = -peakPSF * (durationMS - dt) / rise
		default:
			// Linear decay from +peak to -peak across the wave body.
			pressure[i] = peakPSF * (1 - 2*(dt-rise)/(durationMS-2*rise))
		}
	}
	return timeMS, pressure
}
