package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeContinuedJoinsConsecutivePages(t *testing.T) {
	records := []Record{
		{Judul: "Pemprov Dorong Investasi Pertanian", Konten: "Bagian pertama artikel.", Halaman: "3", Sumber: "Gorontalo Post"},
		{Judul: "Pemprov Dorong Investasi Pertanian", Konten: "Lanjutan dari halaman sebelumnya, bagian kedua.", Halaman: "4", Sumber: "Gorontalo Post"},
		{Judul: "Harga Ikan Stabil", Konten: "Artikel lain.", Halaman: "4", Sumber: "Gorontalo Post"},
	}

	merged := MergeContinued(records)
	require.Len(t, merged, 2)
	assert.Equal(t, "3,4", merged[0].Halaman)
	assert.Contains(t, merged[0].Konten, "Bagian pertama artikel.")
	assert.Contains(t, merged[0].Konten, "bagian kedua.")
	assert.Equal(t, "Harga Ikan Stabil", merged[1].Judul)
}

func TestMergeContinuedRequiresConsecutivePages(t *testing.T) {
	records := []Record{
		{Judul: "Pemprov Dorong Investasi Pertanian", Konten: "Bagian pertama.", Halaman: "3"},
		{Judul: "Pemprov Dorong Investasi Pertanian", Konten: "Lanjutan bagian kedua.", Halaman: "7"},
	}

	merged := MergeContinued(records)
	assert.Len(t, merged, 2)
}

func TestMergeContinuedRequiresIndicator(t *testing.T) {
	// Same title on consecutive pages but no continuation phrase: the
	// extractor found two genuinely separate pieces.
	records := []Record{
		{Judul: "Pemprov Dorong Investasi Pertanian", Konten: "Bagian pertama.", Halaman: "3"},
		{Judul: "Pemprov Dorong Investasi Pertanian", Konten: "Teks baru tanpa penanda apa pun.", Halaman: "4"},
	}

	merged := MergeContinued(records)
	assert.Len(t, merged, 2)
}

func TestMergeContinuedFragmentTitle(t *testing.T) {
	records := []Record{
		{Judul: "Pembangunan Jembatan Dimulai Tahun Ini", Konten: "Bagian pertama.", Halaman: "5"},
		{Judul: "Jembatan Dimulai", Konten: "(Lanjutan dari halaman 5) pekerjaan berlanjut.", Halaman: "6"},
	}

	merged := MergeContinued(records)
	require.Len(t, merged, 1)
	assert.Equal(t, "Pembangunan Jembatan Dimulai Tahun Ini", merged[0].Judul)
	assert.Equal(t, "5,6", merged[0].Halaman)
}

func TestMergeContinuedFragmentNeedsStrongIndicator(t *testing.T) {
	// "baca juga" counts for exact-title continuations but is too weak for
	// a fragment title.
	records := []Record{
		{Judul: "Pembangunan Jembatan Dimulai Tahun Ini", Konten: "Bagian pertama.", Halaman: "5"},
		{Judul: "Jembatan Dimulai", Konten: "Baca juga artikel lainnya.", Halaman: "6"},
	}

	merged := MergeContinued(records)
	assert.Len(t, merged, 2)
}

func TestMergeContinuedSortsByPage(t *testing.T) {
	records := []Record{
		{Judul: "Pemprov Dorong Investasi Pertanian", Konten: "Lanjutan bagian kedua.", Halaman: "4"},
		{Judul: "Pemprov Dorong Investasi Pertanian", Konten: "Bagian pertama.", Halaman: "3"},
	}

	merged := MergeContinued(records)
	require.Len(t, merged, 1)
	assert.Equal(t, "3,4", merged[0].Halaman)
}

func TestMergeContinuedChainAcrossThreePages(t *testing.T) {
	records := []Record{
		{Judul: "Anggaran Daerah Disahkan DPRD", Konten: "Bagian pertama.", Halaman: "1"},
		{Judul: "Anggaran Daerah Disahkan DPRD", Konten: "Lanjutan bagian kedua.", Halaman: "2"},
		{Judul: "Anggaran Daerah Disahkan DPRD", Konten: "Lanjutan bagian ketiga.", Halaman: "3"},
	}

	merged := MergeContinued(records)
	require.Len(t, merged, 1)
	assert.Equal(t, "1,2,3", merged[0].Halaman)
}

func TestMergeContinuedEmpty(t *testing.T) {
	assert.Empty(t, MergeContinued(nil))
}
