package handlers

import (
	"log"
	"net/http"

	"github.com/TimCalavera/calavera-web/internal/api/middleware"
	"github.com/TimCalavera/calavera-web/internal/models"
	"github.com/TimCalavera/calavera-web/internal/repositories"
)

// SiteHandler serves the public pages of the class website.
type SiteHandler struct {
	renderer     *Renderer
	sessions     *middleware.SessionManager
	strukturRepo repositories.StrukturRepository
	jadwalRepo   repositories.JadwalRepository
	piketRepo    repositories.PiketRepository
	siswaRepo    repositories.SiswaRepository
	galeriRepo   repositories.GaleriRepository
}

func NewSiteHandler(
	renderer *Renderer,
	sessions *middleware.SessionManager,
	strukturRepo repositories.StrukturRepository,
	jadwalRepo repositories.JadwalRepository,
	piketRepo repositories.PiketRepository,
	siswaRepo repositories.SiswaRepository,
	galeriRepo repositories.GaleriRepository,
) *SiteHandler {
	return &SiteHandler{
		renderer:     renderer,
		sessions:     sessions,
		strukturRepo: strukturRepo,
		jadwalRepo:   jadwalRepo,
		piketRepo:    piketRepo,
		siswaRepo:    siswaRepo,
		galeriRepo:   galeriRepo,
	}
}

func (h *SiteHandler) page(w http.ResponseWriter, r *http.Request, title string) PageData {
	return PageData{
		Title:   title,
		IsAdmin: h.sessions.IsAdmin(r),
		Flashes: h.sessions.PopFlashes(w, r),
		Data:    map[string]interface{}{},
	}
}

func (h *SiteHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.renderer.Render(w, "index.html", h.page(w, r, "Kelas Calavera"))
}

func (h *SiteHandler) Struktur(w http.ResponseWriter, r *http.Request) {
	data := h.page(w, r, "Struktur Kelas")
	list, err := h.strukturRepo.List(r.Context())
	if err != nil {
		log.Printf("struktur list: %v", err)
	}
	data.Data["Struktur"] = list
	h.renderer.Render(w, "struktur.html", data)
}

// DayGroup is one day's slice of the schedule, in display order.
type DayGroup struct {
	Hari   string
	Jadwal []models.Jadwal
	Piket  []models.Piket
}

func groupByDay(jadwal []models.Jadwal, piket []models.Piket) []DayGroup {
	var groups []DayGroup
	index := map[string]int{}

	groupFor := func(hari string) *DayGroup {
		if i, ok := index[hari]; ok {
			return &groups[i]
		}
		groups = append(groups, DayGroup{Hari: hari})
		index[hari] = len(groups) - 1
		return &groups[len(groups)-1]
	}

	for _, j := range jadwal {
		g := groupFor(j.Hari)
		g.Jadwal = append(g.Jadwal, j)
	}
	for _, p := range piket {
		g := groupFor(p.Hari)
		g.Piket = append(g.Piket, p)
	}
	return groups
}

func (h *SiteHandler) Jadwal(w http.ResponseWriter, r *http.Request) {
	data := h.page(w, r, "Jadwal Pelajaran")

	jadwal, err := h.jadwalRepo.List(r.Context())
	if err != nil {
		log.Printf("jadwal list: %v", err)
	}
	piket, err := h.piketRepo.List(r.Context())
	if err != nil {
		log.Printf("piket list: %v", err)
	}

	data.Data["Days"] = groupByDay(jadwal, piket)
	h.renderer.Render(w, "jadwal.html", data)
}

func (h *SiteHandler) Galeri(w http.ResponseWriter, r *http.Request) {
	data := h.page(w, r, "Galeri Kelas")
	list, err := h.galeriRepo.List(r.Context())
	if err != nil {
		log.Printf("galeri list: %v", err)
	}
	data.Data["Galeri"] = list
	h.renderer.Render(w, "galeri.html", data)
}

func (h *SiteHandler) Siswa(w http.ResponseWriter, r *http.Request) {
	data := h.page(w, r, "Daftar Siswa")
	list, err := h.siswaRepo.List(r.Context())
	if err != nil {
		log.Printf("siswa list: %v", err)
	}
	data.Data["Siswa"] = list
	h.renderer.Render(w, "siswa.html", data)
}

func (h *SiteHandler) Chatbot(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, "chatbot.html", h.page(w, r, "Calavera AI"))
}
