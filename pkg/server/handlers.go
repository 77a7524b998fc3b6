package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/buildinfo"
	"github.com/matzehuels/pinboard/pkg/codegen"
	"github.com/matzehuels/pinboard/pkg/collision"
	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/httputil"
	"github.com/matzehuels/pinboard/pkg/pipeline"
	"github.com/matzehuels/pinboard/pkg/store"
	"github.com/matzehuels/pinboard/pkg/variant"
)

// CountsResponse is the body of GET /variants/{pins}.
type CountsResponse struct {
	PinCount       int `json:"pin_count"`
	Total          int `json:"total"`
	FullyPopulated int `json:"fully_populated"`
}

// PlanResponse is the body of GET /variants/{pins}/{id}.
type PlanResponse struct {
	PinCount       int                   `json:"pin_count"`
	Variant        int                   `json:"variant"`
	Choices        []int                 `json:"choices"`
	Applications   []variant.Application `json:"applications"`
	UsedDimensions [][]int               `json:"used_dimensions"`
}

// DesignResponse is the body of GET /designs/{pins}/{id}. Collisions
// describes the returned layout: empty for a solved design, the canonical
// layout's collisions otherwise.
type DesignResponse struct {
	*pipeline.Design
	Collisions collision.Info `json:"collisions"`
	Cached     bool           `json:"cached"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) variantCounts(w http.ResponseWriter, r *http.Request) {
	pins, err := pinsParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CountsResponse{
		PinCount:       pins,
		Total:          variant.TotalVariants(pins),
		FullyPopulated: variant.FullyPopulated(pins),
	})
}

func (s *Server) variantPlan(w http.ResponseWriter, r *http.Request) {
	pins, id, err := designParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	planner := s.opts.Pipeline.Planner
	choices, err := planner.Choices(id, pins)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	apps, err := planner.Plan(id, pins)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	dims, err := variant.UsedDimensions(apps, pins)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, PlanResponse{
		PinCount:       pins,
		Variant:        id,
		Choices:        choices,
		Applications:   apps,
		UsedDimensions: dims,
	})
}

func (s *Server) design(w http.ResponseWriter, r *http.Request) {
	res, err := s.execute(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	d := res.Design
	resp := DesignResponse{Design: d, Cached: res.CacheInfo.DesignHit}
	if d.Status != pipeline.StatusFiltered {
		elements, err := board.Render(board.Board{PinCount: d.PinCount, Applications: d.Applications, Variations: d.Variations})
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		resp.Collisions = collision.DetectElements(elements)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) netlistSVG(w http.ResponseWriter, r *http.Request) {
	pins, id, err := designParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	svg, hit, err := s.opts.Pipeline.NetlistSVG(r.Context(), pins, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	writeSVG(w, svg)
}

func (s *Server) layoutSVG(w http.ResponseWriter, r *http.Request) {
	res, err := s.execute(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	d := res.Design
	if d.Status == pipeline.StatusFiltered {
		httputil.WriteError(w, errors.New(errors.ErrCodeNotFound, "design %d was filtered: %s", d.Variant, d.Reason))
		return
	}
	elements, err := board.Render(board.Board{PinCount: d.PinCount, Applications: d.Applications, Variations: d.Variations})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeSVG(w, codegen.LayoutSVG(elements, collision.DetectElements(elements)))
}

func (s *Server) stored(w http.ResponseWriter, r *http.Request) {
	if s.opts.Store == nil {
		httputil.WriteError(w, errors.New(errors.ErrCodeUnsupported, "no design store configured"))
		return
	}
	pins, err := pinsParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	recs, err := s.opts.Store.List(r.Context(), pins)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if recs == nil {
		recs = []*store.Record{}
	}
	httputil.WriteJSON(w, http.StatusOK, recs)
}

func (s *Server) execute(r *http.Request) (*pipeline.Result, error) {
	pins, id, err := designParams(r)
	if err != nil {
		return nil, err
	}
	opts := pipeline.Options{
		PinCount:      pins,
		Variant:       id,
		MaxIterations: s.opts.MaxIterations,
		Weights:       s.opts.Weights,
	}
	q := r.URL.Query()
	if v := q.Get("max_iterations"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "max_iterations: %q is not an integer", v)
		}
		opts.MaxIterations = n
	}
	if opts.Filter, err = boolParam(q.Get("filter")); err != nil {
		return nil, err
	}
	if opts.Refresh, err = boolParam(q.Get("refresh")); err != nil {
		return nil, err
	}
	return s.opts.Pipeline.Execute(r.Context(), opts)
}

func pinsParam(r *http.Request) (int, error) {
	v := chi.URLParam(r, "pins")
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidPinCount, "pin count %q is not an integer", v)
	}
	if err := errors.ValidatePinCount(n); err != nil {
		return 0, err
	}
	return n, nil
}

func designParams(r *http.Request) (pins, id int, err error) {
	if pins, err = pinsParam(r); err != nil {
		return 0, 0, err
	}
	v := chi.URLParam(r, "id")
	if id, err = strconv.Atoi(v); err != nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "design id %q is not an integer", v)
	}
	if err := errors.ValidateDesignID(id); err != nil {
		return 0, 0, err
	}
	return pins, id, nil
}

func boolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%q is not a boolean", v)
	}
	return b, nil
}

func writeSVG(w http.ResponseWriter, svg []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}
