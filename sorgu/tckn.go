package sorgu

// ValidateTC reports whether tc is a well-formed TC kimlik numarası:
// 11 ASCII digits, no leading zero, and both check digits matching.
func ValidateTC(tc string) bool {
	if len(tc) != 11 || tc[0] == '0' {
		return false
	}
	var d [11]int
	for i := 0; i < len(tc); i++ {
		c := tc[i]
		if c < '0' || c > '9' {
			return false
		}
		d[i] = int(c - '0')
	}

	tek := d[0] + d[2] + d[4] + d[6] + d[8]
	cift := d[1] + d[3] + d[5] + d[7]

	hane10 := mod10(tek*7 - cift)
	hane11 := mod10(tek + cift + hane10)

	return hane10 == d[9] && hane11 == d[10]
}

// mod10 always returns the non-negative residue.
func mod10(x int) int {
	return ((x % 10) + 10) % 10
}

// maskTC keeps the first three and last two digits for log lines.
func maskTC(tc string) string {
	if len(tc) <= 5 {
		return "***"
	}
	out := []byte(tc)
	for i := 3; i < len(out)-2; i++ {
		out[i] = '*'
	}
	return string(out)
}
