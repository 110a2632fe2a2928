package source

import (
	"bytes"
	"errors"
	"io"

	j "github.com/goccy/go-json"

	goserializer "github.com/reoring/goserializer"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         goserializer.PathRef
	index        int
}

// DuplicateKeys scans a JSON document and reports every repeated object
// key at its JSON Pointer. Syntax errors are reported as parse_error.
func DuplicateKeys(data []byte) goserializer.Issues {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var (
		issues goserializer.Issues
		stack  []dupFrame
		key    string
	)
	// child returns the path of the value about to start in the top frame.
	child := func() goserializer.PathRef {
		if len(stack) == 0 {
			return goserializer.Root()
		}
		top := &stack[len(stack)-1]
		if top.kind == kindArray {
			p := top.path.Index(top.index)
			top.index++
			return p
		}
		return top.path.Field(key)
	}
	valueDone := func() {
		if len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.kind == kindObject {
				top.expectingKey = true
			}
		}
	}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			issues = append(issues, goserializer.IssueAt(goserializer.Root(), goserializer.CodeParseError, err.Error(), nil))
			break
		}
		switch v := tok.(type) {
		case j.Delim:
			switch v {
			case '{':
				stack = append(stack, dupFrame{kind: kindObject, keys: map[string]struct{}{}, expectingKey: true, path: child()})
			case '[':
				stack = append(stack, dupFrame{kind: kindArray, path: child()})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone()
			}
		case string:
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.kind == kindObject && top.expectingKey {
					if _, ok := top.keys[v]; ok {
						issues = append(issues, top.path.Field(v).Issue(goserializer.CodeDuplicateKey, "key '"+v+"' duplicated"))
					}
					top.keys[v] = struct{}{}
					top.expectingKey = false
					key = v
					continue
				}
			}
			child()
			valueDone()
		default:
			child()
			valueDone()
		}
	}
	return issues
}
