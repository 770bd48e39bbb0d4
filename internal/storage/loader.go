package storage

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/isinglab/internal/graph"
)

// LoadEdgeList reads a graph from a text file with one edge per line,
// "u v" or "u,v". Blank lines and lines starting with # are skipped.
// A line with a single token registers an isolated node.
func LoadEdgeList(path string) (*graph.Graph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	g := graph.New()
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		switch len(fields) {
		case 1:
			g.AddNode(fields[0])
		case 2:
			g.AddEdge(fields[0], fields[1])
		default:
			return nil, fmt.Errorf("storage: %s:%d: expected 1 or 2 fields, got %d", path, lineNo, len(fields))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

// LoadSpins reads a spin assignment from a text file with one "id spin"
// pair per line, spin being +1 or -1. Used to evaluate externally labelled
// configurations, e.g. sentiment-derived node states.
func LoadSpins(path string) (map[string]int8, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	assign := make(map[string]int8)
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) != 2 {
			return nil, fmt.Errorf("storage: %s:%d: expected 2 fields, got %d", path, lineNo, len(fields))
		}
		v, err := strconv.ParseInt(fields[1], 10, 8)
		if err != nil || (v != 1 && v != -1) {
			return nil, fmt.Errorf("storage: %s:%d: spin must be +1 or -1, got %q", path, lineNo, fields[1])
		}
		assign[fields[0]] = int8(v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return assign, nil
}
