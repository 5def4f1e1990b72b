package multipart

import "strings"

// Serialize builds a well-formed multipart/form-data body from parts,
// the inverse operation Parse expects to round-trip (spec §8's testable
// property: parse(serialize(parts)) recovers every (name, value) pair).
func Serialize(parts []Part, boundary string) []byte {
	var b strings.Builder
	delim := "--" + boundary
	for _, p := range parts {
		b.WriteString(delim)
		b.WriteString("\r\n")
		if p.Filename != "" {
			b.WriteString(`Content-Disposition: form-data; name="file"; filename="`)
			b.WriteString(p.Filename)
			b.WriteString("\"\r\n")
		} else {
			b.WriteString(`Content-Disposition: form-data; name="`)
			b.WriteString(p.FieldName)
			b.WriteString("\"\r\n")
		}
		b.WriteString("\r\n")
		b.Write(p.Value)
		b.WriteString("\r\n")
	}
	b.WriteString(delim)
	b.WriteString("--")
	return []byte(b.String())
}
