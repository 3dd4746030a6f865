package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bikestore/internal/analytics/domain"
	datasetapp "bikestore/internal/dataset/application"
	datasetdomain "bikestore/internal/dataset/domain"
	shareddomain "bikestore/internal/shared/domain"
	sharedinfra "bikestore/internal/shared/infrastructure"

	"go.uber.org/zap"
)

var (
	// ErrNoDataset aucun dataset n'a encore été chargé
	ErrNoDataset = errors.New("no dataset loaded")
	// ErrUnknownReport nom de rapport inconnu
	ErrUnknownReport = errors.New("unknown report")
)

// Rapports agrégés disponibles
const (
	ReportCategory = "category"
	ReportMonth    = "month"
	ReportProducts = "products"
	ReportStaff    = "staff"
)

// Filters valeurs proposées aux filtres (catégories et bornes observées)
type Filters struct {
	Categories []string
	DateRange  shareddomain.DateRange
}

// DashboardService point d'entrée de la couche de présentation
// Le dataset est un instantané immuable; la table de faits est mémoïsée par
// génération de dataset et partagée entre tous les appels concurrents.
type DashboardService struct {
	loader   *datasetapp.Loader
	source   datasetapp.Source
	cache    sharedinfra.Cache[*domain.FactTable]
	cacheTTL time.Duration
	logger   *zap.Logger

	mu      sync.RWMutex
	dataset *datasetdomain.Dataset
}

// NewDashboardService crée une nouvelle instance de DashboardService
func NewDashboardService(
	loader *datasetapp.Loader,
	source datasetapp.Source,
	cache sharedinfra.Cache[*domain.FactTable],
	cacheTTL time.Duration,
	logger *zap.Logger,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		loader:   loader,
		source:   source,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Reload recharge les tables sources et remplace le dataset courant
// En cas d'échec le dataset précédent reste servi.
func (s *DashboardService) Reload(ctx context.Context) error {
	if s.loader == nil || s.source == nil {
		return fmt.Errorf("reload: %w", ErrNoDataset)
	}
	ds, err := s.loader.Load(ctx, s.source)
	if err != nil {
		return err
	}
	s.SetDataset(ds)
	return nil
}

// SetDataset remplace le dataset courant et invalide l'ancienne table de faits
func (s *DashboardService) SetDataset(ds *datasetdomain.Dataset) {
	s.mu.Lock()
	previous := s.dataset
	s.dataset = ds
	s.mu.Unlock()

	if previous != nil {
		s.cache.Delete(factsCacheKey(previous))
	}
}

// Dataset retourne le dataset courant
func (s *DashboardService) Dataset() (*datasetdomain.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.dataset == nil {
		return nil, ErrNoDataset
	}
	return s.dataset, nil
}

// Facts retourne la table de faits du dataset courant (mémoïsée)
func (s *DashboardService) Facts() (*domain.FactTable, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}

	key := factsCacheKey(ds)
	if cached, found := s.cache.Get(key); found {
		return cached, nil
	}

	facts, report := domain.BuildFacts(ds)
	fields := []zap.Field{
		zap.String("generation", ds.Generation().String()),
		zap.Int("items_in", report.ItemsIn),
		zap.Int("facts_out", report.FactsOut),
	}
	if report.Dropped() > 0 || report.MissingStaffOnFact > 0 {
		s.logger.Warn("referential gaps in sales facts", append(fields,
			zap.Int("missing_product", report.MissingProduct),
			zap.Int("missing_category", report.MissingCategory),
			zap.Int("missing_order", report.MissingOrder),
			zap.Int("missing_staff", report.MissingStaffOnFact),
		)...)
	} else {
		s.logger.Debug("sales facts built", fields...)
	}

	// un SetDataset concurrent a pu remplacer ds: sa table n'est plus mise en cache
	s.mu.RLock()
	if s.dataset == ds {
		s.cache.Set(key, facts, s.cacheTTL)
	}
	s.mu.RUnlock()
	return facts, nil
}

// Filters retourne les catégories et la période observées
func (s *DashboardService) Filters() (Filters, error) {
	facts, err := s.Facts()
	if err != nil {
		return Filters{}, err
	}
	return Filters{
		Categories: domain.ObservedCategories(facts),
		DateRange:  domain.ObservedDateRange(facts),
	}, nil
}

// DefaultCriteria retourne les critères par défaut (tout le périmètre observé)
func (s *DashboardService) DefaultCriteria() (domain.Criteria, error) {
	facts, err := s.Facts()
	if err != nil {
		return domain.Criteria{}, err
	}
	return domain.DefaultCriteria(facts), nil
}

// Filtered retourne la vue filtrée de la table de faits
func (s *DashboardService) Filtered(criteria domain.Criteria) (*domain.FactTable, error) {
	facts, err := s.Facts()
	if err != nil {
		return nil, err
	}
	return domain.Filter(facts, criteria), nil
}

// Summary calcule un rapport agrégé nommé sur la vue filtrée
func (s *DashboardService) Summary(report string, criteria domain.Criteria) (domain.Summary, error) {
	filtered, err := s.Filtered(criteria)
	if err != nil {
		return domain.Summary{}, err
	}
	switch report {
	case ReportCategory:
		return domain.ByCategory(filtered), nil
	case ReportMonth:
		return domain.ByMonth(filtered), nil
	case ReportProducts:
		return domain.TopProducts(filtered, criteria.Limit(), criteria.MinAmount()), nil
	case ReportStaff:
		return domain.TopStaff(filtered, criteria.StaffLimit()), nil
	default:
		return domain.Summary{}, fmt.Errorf("%w: %q", ErrUnknownReport, report)
	}
}

// GetStats calcule toutes les sections du tableau de bord
// Le filtre s'applique toujours AVANT les agrégations. Les sections sont
// calculées en parallèle sur la même vue filtrée (lecture seule).
func (s *DashboardService) GetStats(criteria domain.Criteria) (*domain.Stats, error) {
	filtered, err := s.Filtered(criteria)
	if err != nil {
		return nil, err
	}

	stats := domain.NewStats(criteria)
	var wg sync.WaitGroup
	var mu sync.Mutex

	// chaque section écrit son résultat sous le mutex
	run := func(fn func() func(*domain.Stats)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			apply := fn()
			mu.Lock()
			apply(stats)
			mu.Unlock()
		}()
	}

	run(func() func(*domain.Stats) {
		o := domain.ComputeOverview(filtered)
		return func(st *domain.Stats) { st.SetOverview(o) }
	})
	run(func() func(*domain.Stats) {
		sum := domain.ByCategory(filtered)
		return func(st *domain.Stats) { st.SetByCategory(sum) }
	})
	run(func() func(*domain.Stats) {
		sum := domain.ByMonth(filtered)
		return func(st *domain.Stats) { st.SetByMonth(sum) }
	})
	run(func() func(*domain.Stats) {
		sum := domain.TopProducts(filtered, criteria.Limit(), criteria.MinAmount())
		return func(st *domain.Stats) { st.SetTopProducts(sum) }
	})
	run(func() func(*domain.Stats) {
		sum := domain.TopStaff(filtered, criteria.StaffLimit())
		return func(st *domain.Stats) { st.SetTopStaff(sum) }
	})
	run(func() func(*domain.Stats) {
		missing := domain.CategoriesWithoutSales(criteria.Categories(), filtered)
		return func(st *domain.Stats) { st.SetCategoriesWithoutSales(missing) }
	})

	wg.Wait()

	if stats.IsEmpty() {
		s.logger.Info("no sales for criteria",
			zap.Strings("categories", criteria.Categories()),
			zap.String("date_range", criteria.DateRange().String()),
		)
	}
	return stats, nil
}

func factsCacheKey(ds *datasetdomain.Dataset) string {
	return sharedinfra.NewCacheKeyBuilder().
		Add("facts").
		Add(ds.Generation().String()).
		Build()
}
