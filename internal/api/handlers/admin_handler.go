package handlers

import (
	"database/sql"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/TimCalavera/calavera-web/internal/api/middleware"
	"github.com/TimCalavera/calavera-web/internal/models"
	"github.com/TimCalavera/calavera-web/internal/repositories"
	"github.com/TimCalavera/calavera-web/internal/storage"
)

var photoExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true, "webp": true,
}

// AdminHandler serves the dashboard and every admin mutation. All writes
// finish with a flash message and a redirect back to the relevant tab.
type AdminHandler struct {
	renderer     *Renderer
	sessions     *middleware.SessionManager
	uploads      *storage.UploadStore
	strukturRepo repositories.StrukturRepository
	jadwalRepo   repositories.JadwalRepository
	piketRepo    repositories.PiketRepository
	siswaRepo    repositories.SiswaRepository
	galeriRepo   repositories.GaleriRepository
}

func NewAdminHandler(
	renderer *Renderer,
	sessions *middleware.SessionManager,
	uploads *storage.UploadStore,
	strukturRepo repositories.StrukturRepository,
	jadwalRepo repositories.JadwalRepository,
	piketRepo repositories.PiketRepository,
	siswaRepo repositories.SiswaRepository,
	galeriRepo repositories.GaleriRepository,
) *AdminHandler {
	return &AdminHandler{
		renderer:     renderer,
		sessions:     sessions,
		uploads:      uploads,
		strukturRepo: strukturRepo,
		jadwalRepo:   jadwalRepo,
		piketRepo:    piketRepo,
		siswaRepo:    siswaRepo,
		galeriRepo:   galeriRepo,
	}
}

func (h *AdminHandler) redirectTab(w http.ResponseWriter, r *http.Request, tab string) {
	http.Redirect(w, r, "/admin?tab="+tab, http.StatusSeeOther)
}

// Dashboard renders every tab's data at once; the active tab comes from the
// query string so redirects land on the section that was just changed.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tab := r.URL.Query().Get("tab")
	if tab == "" {
		tab = "struktur"
	}

	data := PageData{
		Title:   "Admin Dashboard",
		IsAdmin: true,
		Flashes: h.sessions.PopFlashes(w, r),
		Data:    map[string]interface{}{"ActiveTab": tab},
	}

	if list, err := h.strukturRepo.List(ctx); err == nil {
		data.Data["Struktur"] = list
	} else {
		log.Printf("struktur list: %v", err)
	}
	if list, err := h.jadwalRepo.List(ctx); err == nil {
		data.Data["Jadwal"] = list
	} else {
		log.Printf("jadwal list: %v", err)
	}
	if list, err := h.piketRepo.List(ctx); err == nil {
		data.Data["Piket"] = list
	} else {
		log.Printf("piket list: %v", err)
	}
	if list, err := h.siswaRepo.List(ctx); err == nil {
		data.Data["Siswa"] = list
	} else {
		log.Printf("siswa list: %v", err)
	}
	if list, err := h.galeriRepo.List(ctx); err == nil {
		data.Data["Galeri"] = list
	} else {
		log.Printf("galeri list: %v", err)
	}

	h.renderer.Render(w, "admin_dashboard.html", data)
}

// savedPhoto stores an uploaded photo field if one was submitted and its
// extension is allowed. An absent field returns ok=false with no flash.
func (h *AdminHandler) savedPhoto(r *http.Request, field, subdir, prefix string) (string, bool) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", false
	}
	defer file.Close()

	if header.Filename == "" || !allowedPhoto(header.Filename) {
		return "", false
	}

	filename, err := h.uploads.SavePhoto(subdir, prefix, header.Filename, file)
	if err != nil {
		log.Printf("save photo: %v", err)
		return "", false
	}
	return filename, true
}

func allowedPhoto(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return photoExtensions[ext]
}

func photoSubmitted(r *http.Request, field string) (multipart.File, *multipart.FileHeader, bool) {
	file, header, err := r.FormFile(field)
	if err != nil || header.Filename == "" {
		return nil, nil, false
	}
	return file, header, true
}

func strukturRole(r *http.Request) string {
	role := r.FormValue("role")
	if role == "Custom" {
		role = strings.TrimSpace(r.FormValue("role_custom"))
		if role == "" {
			role = "Anggota Kelas"
		}
	}
	return role
}

func strukturParent(r *http.Request) sql.NullInt64 {
	raw := r.FormValue("parent_id")
	if raw == "" {
		return sql.NullInt64{}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: id, Valid: true}
}

func (h *AdminHandler) AddStruktur(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	s := &models.Struktur{
		Nama:     r.FormValue("nama"),
		Role:     strukturRole(r),
		ParentID: strukturParent(r),
	}
	if filename, ok := h.savedPhoto(r, "foto", "", ""); ok {
		s.Foto = sql.NullString{String: filename, Valid: true}
	}

	if err := h.strukturRepo.Create(r.Context(), s); err != nil {
		log.Printf("create struktur: %v", err)
		h.sessions.Flash(w, r, "Error: gagal menyimpan data")
	} else {
		h.sessions.Flash(w, r, "Data struktur kelas berhasil ditambahkan")
	}
	h.redirectTab(w, r, "struktur")
}

func (h *AdminHandler) DeleteStruktur(w http.ResponseWriter, r *http.Request, id int64) {
	ctx := r.Context()
	var foto string
	if s, err := h.strukturRepo.GetByID(ctx, id); err == nil && s.Foto.Valid {
		foto = s.Foto.String
	}

	if err := h.strukturRepo.Delete(ctx, id); err != nil {
		log.Printf("delete struktur: %v", err)
		h.sessions.Flash(w, r, "Error: gagal menghapus data")
	} else {
		// The file goes only after the row is gone.
		h.uploads.RemovePhoto("", foto)
		h.sessions.Flash(w, r, "Data struktur kelas berhasil dihapus")
	}
	h.redirectTab(w, r, "struktur")
}

func (h *AdminHandler) AddJadwal(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	j := &models.Jadwal{
		Hari:          r.FormValue("hari"),
		JamMulai:      r.FormValue("jam_mulai"),
		JamSelesai:    r.FormValue("jam_selesai"),
		MataPelajaran: r.FormValue("mata_pelajaran"),
		Guru:          r.FormValue("guru"),
	}

	if err := h.jadwalRepo.Create(r.Context(), j); err != nil {
		log.Printf("create jadwal: %v", err)
		h.sessions.Flash(w, r, "Error: gagal menyimpan data")
	} else {
		h.sessions.Flash(w, r, "Jadwal berhasil ditambahkan")
	}
	h.redirectTab(w, r, "jadwal")
}

func (h *AdminHandler) DeleteJadwal(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.jadwalRepo.Delete(r.Context(), id); err != nil {
		log.Printf("delete jadwal: %v", err)
		h.sessions.Flash(w, r, "Error: gagal menghapus data")
	} else {
		h.sessions.Flash(w, r, "Jadwal berhasil dihapus")
	}
	h.redirectTab(w, r, "jadwal")
}

func (h *AdminHandler) AddPiket(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	p := &models.Piket{
		Hari:      r.FormValue("hari"),
		NamaSiswa: r.FormValue("nama_siswa"),
		Tugas:     r.FormValue("tugas"),
	}

	if err := h.piketRepo.Create(r.Context(), p); err != nil {
		log.Printf("create piket: %v", err)
		h.sessions.Flash(w, r, "Error: gagal menyimpan data")
	} else {
		h.sessions.Flash(w, r, "Jadwal piket berhasil ditambahkan")
	}
	h.redirectTab(w, r, "piket")
}

func (h *AdminHandler) DeletePiket(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.piketRepo.Delete(r.Context(), id); err != nil {
		log.Printf("delete piket: %v", err)
		h.sessions.Flash(w, r, "Error: gagal menghapus data")
	} else {
		h.sessions.Flash(w, r, "Jadwal piket berhasil dihapus")
	}
	h.redirectTab(w, r, "piket")
}

func (h *AdminHandler) AddGaleri(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	file, header, ok := photoSubmitted(r, "foto")
	if !ok {
		h.sessions.Flash(w, r, "Tidak ada file yang dipilih")
		h.redirectTab(w, r, "galeri")
		return
	}
	defer file.Close()

	if !allowedPhoto(header.Filename) {
		h.sessions.Flash(w, r, "Format file tidak didukung")
		h.redirectTab(w, r, "galeri")
		return
	}

	filename, err := h.uploads.SavePhoto("", "", header.Filename, file)
	if err != nil {
		log.Printf("save galeri photo: %v", err)
		h.sessions.Flash(w, r, "Error: gagal menyimpan file")
		h.redirectTab(w, r, "galeri")
		return
	}

	g := &models.Galeri{Filename: filename, Caption: r.FormValue("caption")}
	if err := h.galeriRepo.Create(r.Context(), g); err != nil {
		log.Printf("create galeri: %v", err)
		h.uploads.RemovePhoto("", filename)
		h.sessions.Flash(w, r, "Error: gagal menyimpan data")
	} else {
		h.sessions.Flash(w, r, "Foto berhasil diupload")
	}
	h.redirectTab(w, r, "galeri")
}

func (h *AdminHandler) DeleteGaleri(w http.ResponseWriter, r *http.Request, id int64) {
	ctx := r.Context()
	var foto string
	if g, err := h.galeriRepo.GetByID(ctx, id); err == nil {
		foto = g.Filename
	}

	if err := h.galeriRepo.Delete(ctx, id); err != nil {
		log.Printf("delete galeri: %v", err)
		h.sessions.Flash(w, r, "Error: gagal menghapus data")
	} else {
		h.uploads.RemovePhoto("", foto)
		h.sessions.Flash(w, r, "Foto berhasil dihapus")
	}
	h.redirectTab(w, r, "galeri")
}

// EditGaleri only touches the caption; the photo itself is immutable.
func (h *AdminHandler) EditGaleri(w http.ResponseWriter, r *http.Request, id int64) {
	ctx := r.Context()

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		if err := h.galeriRepo.UpdateCaption(ctx, id, r.FormValue("caption")); err != nil {
			log.Printf("update galeri: %v", err)
			h.sessions.Flash(w, r, "Error: gagal menyimpan data")
		} else {
			h.sessions.Flash(w, r, "Caption foto berhasil diupdate")
		}
		h.redirectTab(w, r, "galeri")
		return
	}

	item, err := h.galeriRepo.GetByID(ctx, id)
	if err != nil {
		h.sessions.Flash(w, r, "Data tidak ditemukan")
		h.redirectTab(w, r, "galeri")
		return
	}

	h.renderer.Render(w, "edit_galeri.html", PageData{
		Title:   "Edit Caption",
		IsAdmin: true,
		Flashes: h.sessions.PopFlashes(w, r),
		Data:    map[string]interface{}{"Item": item},
	})
}

func (h *AdminHandler) AddSiswa(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	s := &models.Siswa{
		Nama:  r.FormValue("nama"),
		Absen: r.FormValue("absen"),
		Bio:   r.FormValue("bio"),
	}
	if filename, ok := h.savedPhoto(r, "foto", "siswa", "siswa"); ok {
		s.Foto = sql.NullString{String: filename, Valid: true}
	}

	err := h.siswaRepo.Create(r.Context(), s)
	switch {
	case errors.Is(err, repositories.ErrDuplicateAbsen):
		h.sessions.Flash(w, r, "Nomor absen sudah ada")
	case err != nil:
		log.Printf("create siswa: %v", err)
		h.sessions.Flash(w, r, "Error: gagal menyimpan data")
	default:
		h.sessions.Flash(w, r, "Siswa berhasil ditambahkan")
	}
	h.redirectTab(w, r, "siswa")
}

func (h *AdminHandler) DeleteSiswa(w http.ResponseWriter, r *http.Request, id int64) {
	ctx := r.Context()
	var foto string
	if s, err := h.siswaRepo.GetByID(ctx, id); err == nil && s.Foto.Valid {
		foto = s.Foto.String
	}

	if err := h.siswaRepo.Delete(ctx, id); err != nil {
		log.Printf("delete siswa: %v", err)
		h.sessions.Flash(w, r, "Error: gagal menghapus data")
	} else {
		h.uploads.RemovePhoto("siswa", foto)
		h.sessions.Flash(w, r, "Siswa berhasil dihapus")
	}
	h.redirectTab(w, r, "siswa")
}

// Edit dispatches the shared edit page for struktur, jadwal, piket and siswa.
func (h *AdminHandler) Edit(w http.ResponseWriter, r *http.Request, entity string, id int64) {
	switch entity {
	case "struktur":
		h.editStruktur(w, r, id)
	case "jadwal":
		h.editJadwal(w, r, id)
	case "piket":
		h.editPiket(w, r, id)
	case "siswa":
		h.editSiswa(w, r, id)
	case "galeri":
		h.EditGaleri(w, r, id)
	default:
		h.sessions.Flash(w, r, "Tipe data tidak valid")
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	}
}

func (h *AdminHandler) editPage(w http.ResponseWriter, r *http.Request, entity string, data map[string]interface{}) {
	data["Type"] = entity
	h.renderer.Render(w, "edit.html", PageData{
		Title:   "Edit Data",
		IsAdmin: true,
		Flashes: h.sessions.PopFlashes(w, r),
		Data:    data,
	})
}

func (h *AdminHandler) editStruktur(w http.ResponseWriter, r *http.Request, id int64) {
	ctx := r.Context()

	if r.Method == http.MethodPost {
		if err := r.ParseMultipartForm(16 << 20); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		s := &models.Struktur{
			ID:       id,
			Nama:     r.FormValue("nama"),
			Role:     strukturRole(r),
			ParentID: strukturParent(r),
		}

		updateFoto := false
		if filename, ok := h.savedPhoto(r, "foto", "", ""); ok {
			if old, err := h.strukturRepo.GetByID(ctx, id); err == nil && old.Foto.Valid {
				h.uploads.RemovePhoto("", old.Foto.String)
			}
			s.Foto = sql.NullString{String: filename, Valid: true}
			updateFoto = true
		}

		if err := h.strukturRepo.Update(ctx, s, updateFoto); err != nil {
			log.Printf("update struktur: %v", err)
			h.sessions.Flash(w, r, "Error: gagal menyimpan data")
		} else {
			h.sessions.Flash(w, r, "Data struktur kelas berhasil diupdate")
		}
		h.redirectTab(w, r, "struktur")
		return
	}

	item, err := h.strukturRepo.GetByID(ctx, id)
	if err != nil {
		h.sessions.Flash(w, r, "Data tidak ditemukan")
		h.redirectTab(w, r, "struktur")
		return
	}
	others, err := h.strukturRepo.ListExcept(ctx, id)
	if err != nil {
		log.Printf("struktur list: %v", err)
	}

	h.editPage(w, r, "struktur", map[string]interface{}{"Item": item, "AllStruktur": others})
}

func (h *AdminHandler) editJadwal(w http.ResponseWriter, r *http.Request, id int64) {
	ctx := r.Context()

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		j := &models.Jadwal{
			ID:            id,
			Hari:          r.FormValue("hari"),
			JamMulai:      r.FormValue("jam_mulai"),
			JamSelesai:    r.FormValue("jam_selesai"),
			MataPelajaran: r.FormValue("mata_pelajaran"),
			Guru:          r.FormValue("guru"),
		}

		if err := h.jadwalRepo.Update(ctx, j); err != nil {
			log.Printf("update jadwal: %v", err)
			h.sessions.Flash(w, r, "Error: gagal menyimpan data")
		} else {
			h.sessions.Flash(w, r, "Jadwal berhasil diupdate")
		}
		h.redirectTab(w, r, "jadwal")
		return
	}

	item, err := h.jadwalRepo.GetByID(ctx, id)
	if err != nil {
		h.sessions.Flash(w, r, "Data tidak ditemukan")
		h.redirectTab(w, r, "jadwal")
		return
	}
	h.editPage(w, r, "jadwal", map[string]interface{}{"Item": item})
}

func (h *AdminHandler) editPiket(w http.ResponseWriter, r *http.Request, id int64) {
	ctx := r.Context()

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		p := &models.Piket{
			ID:        id,
			Hari:      r.FormValue("hari"),
			NamaSiswa: r.FormValue("nama_siswa"),
			Tugas:     r.FormValue("tugas"),
		}

		if err := h.piketRepo.Update(ctx, p); err != nil {
			log.Printf("update piket: %v", err)
			h.sessions.Flash(w, r, "Error: gagal menyimpan data")
		} else {
			h.sessions.Flash(w, r, "Jadwal piket berhasil diupdate")
		}
		h.redirectTab(w, r, "piket")
		return
	}

	item, err := h.piketRepo.GetByID(ctx, id)
	if err != nil {
		h.sessions.Flash(w, r, "Data tidak ditemukan")
		h.redirectTab(w, r, "piket")
		return
	}
	h.editPage(w, r, "piket", map[string]interface{}{"Item": item})
}

func (h *AdminHandler) editSiswa(w http.ResponseWriter, r *http.Request, id int64) {
	ctx := r.Context()

	if r.Method == http.MethodPost {
		if err := r.ParseMultipartForm(16 << 20); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		s := &models.Siswa{
			ID:    id,
			Nama:  r.FormValue("nama"),
			Absen: r.FormValue("absen"),
			Bio:   r.FormValue("bio"),
		}

		updateFoto := false
		if filename, ok := h.savedPhoto(r, "foto", "siswa", "siswa"); ok {
			if old, err := h.siswaRepo.GetByID(ctx, id); err == nil && old.Foto.Valid {
				h.uploads.RemovePhoto("siswa", old.Foto.String)
			}
			s.Foto = sql.NullString{String: filename, Valid: true}
			updateFoto = true
		}

		err := h.siswaRepo.Update(ctx, s, updateFoto)
		switch {
		case errors.Is(err, repositories.ErrDuplicateAbsen):
			h.sessions.Flash(w, r, "Nomor absen sudah ada")
		case err != nil:
			log.Printf("update siswa: %v", err)
			h.sessions.Flash(w, r, "Error: gagal menyimpan data")
		default:
			h.sessions.Flash(w, r, "Data siswa berhasil diupdate")
		}
		h.redirectTab(w, r, "siswa")
		return
	}

	item, err := h.siswaRepo.GetByID(ctx, id)
	if err != nil {
		h.sessions.Flash(w, r, "Data tidak ditemukan")
		h.redirectTab(w, r, "siswa")
		return
	}
	h.editPage(w, r, "siswa", map[string]interface{}{"Item": item})
}
