package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hulondalo/warta/internal/logger"
)

func TestClientProcess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/extract", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "GP_12.06.2025.pdf", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"judul":"Panen Jagung Meningkat","konten":"isi artikel","kategori":"A1","halaman":"1","sumber":"Gorontalo Post"},
			{"judul":"Pasar Rakyat Dibuka","konten":"isi lain","kategori":"","halaman":"2","sumber":"Gorontalo Post"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), logger.NewNoOp())
	assert.Equal(t, StatusIdle, client.Status())

	records, err := client.Process(context.Background(), []byte("%PDF-1.4"), "GP_12.06.2025.pdf")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Panen Jagung Meningkat", records[0].Judul)
	assert.Equal(t, "A1", records[0].Kategori)
	assert.Equal(t, StatusCompleted, client.Status())
}

func TestClientProcessServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), logger.NewNoOp())
	records, err := client.Process(context.Background(), []byte("%PDF-1.4"), "scan.pdf")
	require.Error(t, err)
	assert.Empty(t, records)
	assert.Equal(t, StatusError, client.Status())
}

func TestClientProcessBadResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), logger.NewNoOp())
	_, err := client.Process(context.Background(), []byte("%PDF-1.4"), "scan.pdf")
	require.Error(t, err)
	assert.Equal(t, StatusError, client.Status())
}
