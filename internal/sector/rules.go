package sector

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rule binds a sector code to its keyword set. Rules are evaluated in slice
// order; the first rule with any keyword present in the analysis text wins.
type Rule struct {
	Code     Code     `yaml:"code"`
	Keywords []string `yaml:"keywords"`
}

// DefaultRules returns the built-in keyword table, one rule per code in
// priority order. The catch-all Umum carries no rule.
func DefaultRules() []Rule {
	return []Rule{
		{Code: A1, Keywords: []string{
			"pertanian", "tanaman", "padi", "jagung", "beras", "palawija", "hortikultura",
			"perkebunan", "sawit", "kelapa", "kakao", "kopi", "teh", "cengkeh", "petani",
			"panen", "pupuk", "bibit", "kehutanan", "kayu", "hutan",
			"peternakan", "ternak", "sapi", "ayam", "kambing", "perburuan", "buruan",
		}},
		{Code: A2, Keywords: []string{
			"kehutanan", "penebangan", "kayu", "hutan", "rimba", "hutan lindung",
			"pengelolaan hutan", "kayu lapis", "kayu gergajian",
		}},
		{Code: A3, Keywords: []string{
			"perikanan", "ikan", "nelayan", "laut", "tambak", "kolam", "budidaya ikan",
			"perikanan tangkap", "udang", "kepiting", "cumi", "gurita",
		}},
		{Code: B, Keywords: []string{
			"tambang", "mining", "galian", "minerba", "emas", "tembaga", "nikel",
			"batubara", "minyak", "gas", "panas bumi", "pertambangan", "miner",
		}},
		{Code: C1, Keywords: []string{
			"makanan", "minuman", "kuliner", "mamin", "industri makanan", "pengolahan makanan",
			"roti", "kue", "susu", "keju", "yogurt", "minuman ringan", "jus", "teh botol",
		}},
		{Code: C2, Keywords: []string{
			"industri", "pengolahan", "manufaktur", "pabrik", "produksi", "industri kimia",
			"industri logam", "industri plastik", "industri karet", "industri semen",
		}},
		{Code: C3, Keywords: []string{
			"tekstil", "pakaian", "konveksi", "garmen", "baju", "kaos", "celana",
			"kain", "benang", "spinning", "weaving", "garment",
		}},
		{Code: C4, Keywords: []string{
			"elektronik", "teknologi", "gadget", "komputer", "handphone", "hp", "smartphone",
			"laptop", "elektronika", "semikonduktor", "chip", "elektronik konsumen",
		}},
		{Code: C5, Keywords: []string{
			"kertas", "printing", "media", "publikasi", "koran", "majalah", "buku",
			"karton", "tisu", "printing press", "percetakan",
		}},
		{Code: D, Keywords: []string{
			"listrik", "gas", "energi", "pln", "kelistrikan", "pembangkit", "transmisi",
			"distribusi", "tenaga listrik", "gas alam", "lng",
		}},
		{Code: E, Keywords: []string{
			"air", "sanitasi", "pdam", "bersih", "pengolahan air", "air minum",
			"sanitasi lingkungan", "drainase", "pengelolaan air",
		}},
		{Code: F, Keywords: []string{
			"konstruksi", "bangunan", "jalan", "infrastruktur", "jembatan", "gedung",
			"proyek konstruksi", "developer", "kontraktor", "sipil",
		}},
		{Code: G1, Keywords: []string{
			"otomotif", "mobil", "motor", "sepeda motor", "dealer", "showroom",
			"bengkel", "reparasi", "service", "sparepart", "aksesoris kendaraan",
		}},
		{Code: G2, Keywords: []string{
			"toko", "supermarket", "minimarket", "retail", "eceran", "department store",
			"mall", "pusat perbelanjaan", "ritel modern",
		}},
		{Code: G3, Keywords: []string{
			"los pasar", "kaki lima", "pedagang", "pasar tradisional", "warung",
			"pedagang keliling", "pasar rakyat", "retail tradisional",
		}},
		{Code: H1, Keywords: []string{
			"darat", "bus", "angkot", "transportasi", "angkutan", "logistik", "trucking",
			"ekspedisi", "kurir", "delivery", "ojek", "taxi",
		}},
		{Code: H2, Keywords: []string{
			"laut", "kapal", "pelabuhan", "maritim", "shipping", "kontainer",
			"barang laut", "perkapalan", "pelayaran", "marina",
		}},
		{Code: H3, Keywords: []string{
			"udara", "pesawat", "bandara", "aviasi", "penerbangan", "airport",
			"maskapai", "airline", "cargo udara", "angkutan udara",
		}},
		{Code: I1, Keywords: []string{
			"hotel", "wisata", "akomodasi", "hospitality", "penginapan", "villa",
			"resort", "homestay", "pondok wisata", "pariwisata",
		}},
		{Code: I2, Keywords: []string{
			"restoran", "kedai", "makan", "fnb", "food and beverage", "kafe",
			"warung makan", "rumah makan", "food court", "kuliner",
		}},
		{Code: J, Keywords: []string{
			"komunikasi", "internet", "telekomunikasi", "telekom", "telepon",
			"seluler", "provider", "operator", "broadband", "fiber optik",
		}},
		{Code: K, Keywords: []string{
			"keuangan", "bank", "asuransi", "finance", "perbankan", "leasing",
			"kredit", "pinjaman", "tabungan", "investasi", "sekuritas",
		}},
		{Code: L, Keywords: []string{
			"real estate", "properti", "perumahan", "developer", "real estat",
			"property", "apartemen", "landed house",
		}},
		{Code: MN, Keywords: []string{
			"perusahaan", "bisnis", "jasa", "korporasi", "konsultan", "akuntan",
			"legal", "hukum", "notaris", "management consultant",
		}},
		{Code: O, Keywords: []string{
			"pemerintah", "pemda", "bupati", "dinas", "kementerian", "pemerintah daerah",
			"administrasi", "birokrasi", "pelayanan publik", "pemerintahan",
		}},
		{Code: P, Keywords: []string{
			"pendidikan", "sekolah", "siswa", "guru", "universitas", "kampus",
			"pendidikan tinggi", "sd", "smp", "sma", "smk", "kursus", "pelatihan",
		}},
		{Code: Q, Keywords: []string{
			"kesehatan", "rumah sakit", "dokter", "medis", "klinik", "puskesmas",
			"bidan", "perawat", "farmasi", "apotek", "rs", "hospital",
		}},
		{Code: RSTU, Keywords: []string{
			"jasa", "servis", "bisnis", "usaha", "konsultasi", "perdagangan",
			"entertainment", "hiburan", "olahraga", "seni", "budaya",
		}},
	}
}

// LoadRules reads a keyword table from a YAML file. The file order defines
// the priority order, so an override can both retune keywords and reorder
// the tie-breaking.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var rules []Rule
	if unmarshalErr := yaml.Unmarshal(data, &rules); unmarshalErr != nil {
		return nil, fmt.Errorf("parse rules file: %w", unmarshalErr)
	}

	if validateErr := ValidateRules(rules); validateErr != nil {
		return nil, validateErr
	}

	return rules, nil
}

// ValidateRules checks a keyword table for unknown codes, a rule for the
// catch-all, duplicates, and empty keyword sets.
func ValidateRules(rules []Rule) error {
	if len(rules) == 0 {
		return fmt.Errorf("rules table is empty")
	}

	seen := make(map[Code]bool, len(rules))
	for i, rule := range rules {
		if !IsValid(rule.Code) {
			return fmt.Errorf("rule %d: unknown sector code %q", i, rule.Code)
		}
		if rule.Code == Umum {
			return fmt.Errorf("rule %d: %s is the fallback and cannot carry keywords", i, Umum)
		}
		if seen[rule.Code] {
			return fmt.Errorf("rule %d: duplicate sector code %q", i, rule.Code)
		}
		seen[rule.Code] = true
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("rule %d (%s): no keywords", i, rule.Code)
		}
	}

	return nil
}
