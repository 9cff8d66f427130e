package rawhttp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rawhttpgo/core/internal/scan"
	"github.com/rawhttpgo/core/internal/uri"
)

// parseRequestLine implements the request-line algorithm in full: leading
// empty line tolerance, method validation, the several shapes a malformed
// token split can take, request-target decomposition and version literal
// validation.
func parseRequestLine(text string, opts Options, errFn ErrorFactory) (RequestLine, error) {
	s := scan.New(strings.NewReader(text))

	lineNum := s.Line()
	line, err := s.ReadLine(maxHeaderLineLength, opts.AllowNewLineWithoutReturn)
	if err == scan.ErrNoContent {
		return RequestLine{}, errFn("No content", 0)
	}
	if err != nil {
		return RequestLine{}, err
	}
	if opts.IgnoreLeadingEmptyLine && len(line) == 0 {
		lineNum = s.Line()
		line, err = s.ReadLine(maxHeaderLineLength, opts.AllowNewLineWithoutReturn)
		if err == scan.ErrNoContent {
			return RequestLine{}, errFn("No content", 0)
		}
		if err != nil {
			return RequestLine{}, err
		}
	}

	lineStr := string(line)

	spaceIdx := strings.IndexByte(lineStr, ' ')
	if spaceIdx < 0 {
		return RequestLine{}, errFn("Invalid request line", lineNum)
	}
	method := lineStr[:spaceIdx]
	if method == "" {
		return RequestLine{}, errFn("Invalid request line", lineNum)
	}
	if err := validateMethod(method, lineNum, errFn); err != nil {
		return RequestLine{}, err
	}

	rest := lineStr[spaceIdx+1:]
	if rest == "" {
		return RequestLine{}, errFn("Missing request target", lineNum)
	}
	if rest[0] == ' ' {
		snippet := rest
		if len(snippet) > 2 {
			snippet = snippet[:2]
		}
		return RequestLine{}, errFn(
			fmt.Sprintf("Invalid request target: Illegal character in authority at index 0: '%s'", snippet), lineNum)
	}

	subtokens := strings.Split(rest, " ")

	var target, versionLiteral string
	var haveVersion bool

	switch {
	case len(subtokens) == 1:
		target = subtokens[0]
		haveVersion = false
	case len(subtokens) == 2:
		target = subtokens[0]
		versionLiteral = subtokens[1]
		haveVersion = true
	default:
		target = strings.Join(subtokens[:len(subtokens)-1], " ")
		versionLiteral = subtokens[len(subtokens)-1]
		haveVersion = true
		if !opts.AllowIllegalStartLineCharacters {
			badIdx := len(subtokens[0])
			snippet := target[badIdx:]
			return RequestLine{}, errFn(
				fmt.Sprintf("Invalid request target: Illegal character in path at index %d: '%s'", badIdx, snippet), lineNum)
		}
	}

	var version HTTPVersion
	if haveVersion {
		v, ok := parseHTTPVersion(versionLiteral)
		if !ok {
			return RequestLine{}, errFn("Unknown HTTP version", lineNum)
		}
		version = v
	} else {
		if !opts.InsertHTTPVersionIfMissing {
			return RequestLine{}, errFn("Missing HTTP version", lineNum)
		}
		version = HTTP11
	}

	parsedURI, err := uri.Parse(target, opts.AllowIllegalStartLineCharacters)
	if err != nil {
		if uerr, ok := err.(*uri.Error); ok {
			return RequestLine{}, errFn("Invalid request target: "+uerr.Error(), lineNum)
		}
		return RequestLine{}, err
	}

	return RequestLine{Method: method, URI: parsedURI, HTTPVersion: version}, nil
}

func validateMethod(method string, lineNum int, errFn ErrorFactory) error {
	for i := 0; i < len(method); i++ {
		if !scan.IsTChar(method[i]) {
			return errFn(fmt.Sprintf("Invalid method name: illegal character at index %d: '%s'", i, method), lineNum)
		}
	}
	return nil
}

// parseResponseLine implements the status-line algorithm: version literal,
// a mandatory three-digit status code, and an optional (possibly
// space-containing) reason phrase taken verbatim to end of line.
func parseResponseLine(text string, opts Options, errFn ErrorFactory) (StatusLine, error) {
	s := scan.New(strings.NewReader(text))

	lineNum := s.Line()
	line, err := s.ReadLine(maxHeaderLineLength, opts.AllowNewLineWithoutReturn)
	if err == scan.ErrNoContent {
		return StatusLine{}, errFn("No content", 0)
	}
	if err != nil {
		return StatusLine{}, err
	}
	if opts.IgnoreLeadingEmptyLine && len(line) == 0 {
		lineNum = s.Line()
		line, err = s.ReadLine(maxHeaderLineLength, opts.AllowNewLineWithoutReturn)
		if err == scan.ErrNoContent {
			return StatusLine{}, errFn("No content", 0)
		}
		if err != nil {
			return StatusLine{}, err
		}
	}

	tokens := strings.SplitN(string(line), " ", 3)
	if len(tokens) < 2 {
		return StatusLine{}, errFn("Invalid status line", lineNum)
	}

	version, ok := parseHTTPVersion(tokens[0])
	if !ok {
		return StatusLine{}, errFn("Unknown HTTP version", lineNum)
	}

	codeStr := tokens[1]
	if len(codeStr) != 3 || !allDigits(codeStr) {
		return StatusLine{}, errFn("Invalid status code", lineNum)
	}
	code, convErr := strconv.Atoi(codeStr)
	if convErr != nil {
		return StatusLine{}, errFn("Invalid status code", lineNum)
	}

	reason := ""
	if len(tokens) == 3 {
		reason = tokens[2]
	}

	return StatusLine{HTTPVersion: version, StatusCode: code, ReasonPhrase: reason}, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
