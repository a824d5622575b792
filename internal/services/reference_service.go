package services

import (
	"context"
	"log/slog"
	"sync"

	"nsap-service/internal/models"
	"nsap-service/internal/repository"

	"github.com/google/uuid"
)

// UnknownName is returned for any id the reference cache cannot resolve.
// Lookups never fail: a missing row must not break a chart.
const UnknownName = "(unknown)"

// ReferenceService caches the lookup tables in memory and serves the
// id-to-name resolution the aggregation engine and handlers need. Each
// category loads independently; one failed category is logged and stays
// empty while the others keep serving (Reload heals it later).
type ReferenceService struct {
	repo *repository.ReferenceRepository

	mu             sync.RWMutex
	regions        []models.Region
	landingCenters []models.LandingCenter
	fishingGrounds []models.FishingGround
	gears          []models.FishingGear
	vessels        []models.Vessel
	species        []models.Species
	effortUnits    []models.FishingEffortUnit

	regionNames        map[uuid.UUID]string
	landingCenterNames map[uuid.UUID]string
	fishingGroundNames map[uuid.UUID]string
	gearDescriptions   map[uuid.UUID]string
	vesselNames        map[uuid.UUID]string
	speciesNames       map[uuid.UUID]string
	effortUnitNames    map[uuid.UUID]string
}

func NewReferenceService(repo *repository.ReferenceRepository) *ReferenceService {
	s := &ReferenceService{repo: repo}
	s.resetMaps()
	return s
}

func (s *ReferenceService) resetMaps() {
	s.regionNames = make(map[uuid.UUID]string)
	s.landingCenterNames = make(map[uuid.UUID]string)
	s.fishingGroundNames = make(map[uuid.UUID]string)
	s.gearDescriptions = make(map[uuid.UUID]string)
	s.vesselNames = make(map[uuid.UUID]string)
	s.speciesNames = make(map[uuid.UUID]string)
	s.effortUnitNames = make(map[uuid.UUID]string)
}

// Reload refreshes every category from the database. Categories that fail
// keep whatever they held before.
func (s *ReferenceService) Reload(ctx context.Context) {
	if regions, err := s.repo.ListRegions(ctx); err != nil {
		slog.Error("failed to load regions", "error", err)
	} else {
		s.mu.Lock()
		s.regions = regions
		s.regionNames = make(map[uuid.UUID]string, len(regions))
		for _, r := range regions {
			s.regionNames[r.ID] = r.Name
		}
		s.mu.Unlock()
	}

	if centers, err := s.repo.ListLandingCenters(ctx, nil); err != nil {
		slog.Error("failed to load landing centers", "error", err)
	} else {
		s.mu.Lock()
		s.landingCenters = centers
		s.landingCenterNames = make(map[uuid.UUID]string, len(centers))
		for _, c := range centers {
			s.landingCenterNames[c.ID] = c.Name
		}
		s.mu.Unlock()
	}

	if grounds, err := s.repo.ListFishingGrounds(ctx, nil); err != nil {
		slog.Error("failed to load fishing grounds", "error", err)
	} else {
		s.mu.Lock()
		s.fishingGrounds = grounds
		s.fishingGroundNames = make(map[uuid.UUID]string, len(grounds))
		for _, g := range grounds {
			s.fishingGroundNames[g.ID] = g.Name
		}
		s.mu.Unlock()
	}

	if gears, err := s.repo.ListGears(ctx); err != nil {
		slog.Error("failed to load fishing gears", "error", err)
	} else {
		s.mu.Lock()
		s.gears = gears
		s.gearDescriptions = make(map[uuid.UUID]string, len(gears))
		for _, g := range gears {
			s.gearDescriptions[g.ID] = g.Description
		}
		s.mu.Unlock()
	}

	if vessels, err := s.repo.ListVessels(ctx, nil); err != nil {
		slog.Error("failed to load vessels", "error", err)
	} else {
		s.mu.Lock()
		s.vessels = vessels
		s.vesselNames = make(map[uuid.UUID]string, len(vessels))
		for _, v := range vessels {
			s.vesselNames[v.ID] = v.Name
		}
		s.mu.Unlock()
	}

	if species, err := s.repo.ListSpecies(ctx); err != nil {
		slog.Error("failed to load species", "error", err)
	} else {
		s.mu.Lock()
		s.species = species
		s.speciesNames = make(map[uuid.UUID]string, len(species))
		for _, sp := range species {
			s.speciesNames[sp.ID] = sp.Name
		}
		s.mu.Unlock()
	}

	if units, err := s.repo.ListEffortUnits(ctx); err != nil {
		slog.Error("failed to load effort units", "error", err)
	} else {
		s.mu.Lock()
		s.effortUnits = units
		s.effortUnitNames = make(map[uuid.UUID]string, len(units))
		for _, u := range units {
			s.effortUnitNames[u.ID] = u.Name
		}
		s.mu.Unlock()
	}
}

// ============================================================================
// NAME RESOLUTION (NameResolver)
// ============================================================================

func nameOrUnknown(m map[uuid.UUID]string, id uuid.UUID) string {
	if name, ok := m[id]; ok {
		return name
	}
	return UnknownName
}

func (s *ReferenceService) SpeciesName(id uuid.UUID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nameOrUnknown(s.speciesNames, id)
}

func (s *ReferenceService) RegionName(id uuid.UUID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nameOrUnknown(s.regionNames, id)
}

func (s *ReferenceService) GearDescription(id uuid.UUID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nameOrUnknown(s.gearDescriptions, id)
}

func (s *ReferenceService) VesselName(id uuid.UUID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nameOrUnknown(s.vesselNames, id)
}

func (s *ReferenceService) LandingCenterName(id uuid.UUID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nameOrUnknown(s.landingCenterNames, id)
}

func (s *ReferenceService) FishingGroundName(id uuid.UUID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nameOrUnknown(s.fishingGroundNames, id)
}

func (s *ReferenceService) EffortUnitName(id uuid.UUID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nameOrUnknown(s.effortUnitNames, id)
}

// ============================================================================
// SCOPED LISTINGS
// Region-bound categories are filtered to the caller's visible region;
// region-free ones (gears, species, effort units) are served as loaded.
// ============================================================================

func (s *ReferenceService) Regions(claims *models.Claims) []models.Region {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if region := claims.VisibleRegion(); region != nil {
		for _, r := range s.regions {
			if r.ID == *region {
				return []models.Region{r}
			}
		}
		return []models.Region{}
	}
	return append([]models.Region{}, s.regions...)
}

func (s *ReferenceService) LandingCenters(claims *models.Claims) []models.LandingCenter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	region := claims.VisibleRegion()
	out := make([]models.LandingCenter, 0, len(s.landingCenters))
	for _, c := range s.landingCenters {
		if region == nil || c.RegionID == *region {
			out = append(out, c)
		}
	}
	return out
}

func (s *ReferenceService) FishingGrounds(claims *models.Claims) []models.FishingGround {
	s.mu.RLock()
	defer s.mu.RUnlock()
	region := claims.VisibleRegion()
	out := make([]models.FishingGround, 0, len(s.fishingGrounds))
	for _, g := range s.fishingGrounds {
		if region == nil || g.RegionID == *region {
			out = append(out, g)
		}
	}
	return out
}

func (s *ReferenceService) Vessels(claims *models.Claims) []models.Vessel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	region := claims.VisibleRegion()
	out := make([]models.Vessel, 0, len(s.vessels))
	for _, v := range s.vessels {
		if region == nil || v.RegionID == *region {
			out = append(out, v)
		}
	}
	return out
}

func (s *ReferenceService) Gears() []models.FishingGear {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.FishingGear{}, s.gears...)
}

func (s *ReferenceService) Species() []models.Species {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Species{}, s.species...)
}

func (s *ReferenceService) EffortUnits() []models.FishingEffortUnit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.FishingEffortUnit{}, s.effortUnits...)
}
