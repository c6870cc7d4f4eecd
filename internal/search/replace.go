package search

// Replace substitutes every non-empty match of req in content. With Regex set
// the replacement may reference capture groups ($1, ${name}); otherwise it is
// inserted literally. It returns the new content and the number of replacements.
func Replace(content string, req *Request, replacement string) (string, int, error) {
	re, err := req.Pattern()
	if err != nil {
		return content, 0, err
	}
	var (
		out   []byte
		last  int
		count int
	)
	for _, m := range re.FindAllStringSubmatchIndex(content, -1) {
		if m[0] == m[1] {
			continue
		}
		out = append(out, content[last:m[0]]...)
		if req.Regex {
			out = re.ExpandString(out, replacement, content, m)
		} else {
			out = append(out, replacement...)
		}
		last = m[1]
		count++
	}
	if count == 0 {
		return content, 0, nil
	}
	out = append(out, content[last:]...)
	return string(out), count, nil
}
