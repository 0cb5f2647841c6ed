// Package sector implements the BPS/KBLI statistical sector taxonomy and
// the rule-based classifier that maps article text to one of its 29 codes.
package sector

import "strings"

// Code is a BPS/KBLI sector code.
type Code string

// The 29 sector codes, listed in classification priority order. When text
// matches keywords of several codes, the earliest code in this list wins.
const (
	A1   Code = "A1"
	A2   Code = "A2"
	A3   Code = "A3"
	B    Code = "B"
	C1   Code = "C1"
	C2   Code = "C2"
	C3   Code = "C3"
	C4   Code = "C4"
	C5   Code = "C5"
	D    Code = "D"
	E    Code = "E"
	F    Code = "F"
	G1   Code = "G1"
	G2   Code = "G2"
	G3   Code = "G3"
	H1   Code = "H1"
	H2   Code = "H2"
	H3   Code = "H3"
	I1   Code = "I1"
	I2   Code = "I2"
	J    Code = "J"
	K    Code = "K"
	L    Code = "L"
	MN   Code = "MN"
	O    Code = "O"
	P    Code = "P"
	Q    Code = "Q"
	RSTU Code = "RSTU"
	// Umum is the catch-all for unclassifiable content.
	Umum Code = "UMUM"
)

// Codes enumerates every valid code in priority order, catch-all last.
var Codes = []Code{
	A1, A2, A3, B, C1, C2, C3, C4, C5, D, E, F, G1, G2, G3,
	H1, H2, H3, I1, I2, J, K, L, MN, O, P, Q, RSTU, Umum,
}

// labels holds the human-readable Indonesian label for each code.
var labels = map[Code]string{
	A1:   "Pertanian (Tanaman Pangan, Hortikultura, Perkebunan), Peternakan, Perburuan dan Jasa Pertanian",
	A2:   "Kehutanan dan Penebangan Kayu",
	A3:   "Perikanan",
	B:    "Pertambangan dan Penggalian",
	C1:   "Industri Makanan dan Minuman",
	C2:   "Industri Pengolahan",
	C3:   "Industri Tekstil dan Pakaian Jadi",
	C4:   "Industri Elektronika",
	C5:   "Industri Kertas/barang dari Kertas",
	D:    "Pengadaan Listrik, Gas",
	E:    "Pengadaan Air",
	F:    "Konstruksi",
	G1:   "Perdagangan, Reparasi dan Perawatan Mobil dan Sepeda Motor",
	G2:   "Perdagangan Eceran Berbagai Macam Barang di Toko, Supermarket/Minimarket",
	G3:   "Perdagangan Eceran Kaki Lima dan Los Pasar",
	H1:   "Angkutan Darat",
	H2:   "Angkutan Laut",
	H3:   "Angkutan Udara",
	I1:   "Akomodasi Hotel dan Pondok Wisata",
	I2:   "Penyediaan Makanan dan Minuman (Kedai, Restoran, dsb)",
	J:    "Informasi dan Komunikasi",
	K:    "Jasa Keuangan",
	L:    "Real Estate",
	MN:   "Jasa Perusahaan",
	O:    "Administrasi Pemerintahan, Pertahanan dan Jaminan Sosial Wajib",
	P:    "Jasa Pendidikan",
	Q:    "Jasa Kesehatan dan Kegiatan Sosial",
	RSTU: "Jasa lainnya",
	Umum: "UMUM",
}

// Label returns the Indonesian label for a code, or the code itself when
// unknown.
func Label(c Code) string {
	if l, ok := labels[c]; ok {
		return l
	}
	return string(c)
}

// IsValid reports whether c is one of the 29 codes.
func IsValid(c Code) bool {
	_, ok := labels[c]
	return ok
}

// Validate normalizes a raw category string to a valid code. The code may
// appear embedded in a longer string such as "A1 - Pertanian" or
// "Pertanian A1"; the first code (in priority order) found as a prefix or
// suffix wins. Anything unrecognized maps to Umum.
func Validate(raw string) Code {
	if raw == "" {
		return Umum
	}

	upper := strings.ToUpper(strings.TrimSpace(raw))
	if IsValid(Code(upper)) {
		return Code(upper)
	}

	for _, c := range Codes {
		if strings.HasPrefix(upper, string(c)) || strings.HasSuffix(upper, string(c)) {
			return c
		}
	}

	return Umum
}
