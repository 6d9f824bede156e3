package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/entity"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/valueobject"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/port/outbound"
)

// In-memory port fakes shared by the engine tests.

type fakeMoleculeRepo struct {
	molecules []entity.Molecule
	inserted  []entity.Molecule
	statuses  map[int64]valueobject.MoleculeStatus
	findErr   error
}

func (f *fakeMoleculeRepo) FindByID(_ context.Context, id int64) (*entity.Molecule, error) {
	for i := range f.molecules {
		if f.molecules[i].ID == id {
			return &f.molecules[i], nil
		}
	}
	return nil, nil
}

func (f *fakeMoleculeRepo) FindByGRNumber(_ context.Context, grNumber valueobject.GRNumber) (*entity.Molecule, error) {
	for i := range f.molecules {
		if f.molecules[i].GrNumber == grNumber {
			return &f.molecules[i], nil
		}
	}
	return nil, nil
}

func (f *fakeMoleculeRepo) FindAll(_ context.Context, filters outbound.MoleculeFilters) ([]entity.Molecule, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []entity.Molecule
	for _, m := range f.molecules {
		if m.IsArchived {
			continue
		}
		if filters.Status != nil && m.Status != *filters.Status {
			continue
		}
		out = append(out, m)
		if filters.Limit > 0 && len(out) == filters.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeMoleculeRepo) Exists(_ context.Context, grNumber valueobject.GRNumber) (bool, error) {
	for _, m := range f.molecules {
		if m.GrNumber == grNumber {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMoleculeRepo) Insert(_ context.Context, molecule *entity.Molecule) error {
	f.inserted = append(f.inserted, *molecule)
	return nil
}

func (f *fakeMoleculeRepo) UpdateStatus(_ context.Context, id int64, status valueobject.MoleculeStatus, _ string) error {
	if f.statuses == nil {
		f.statuses = make(map[int64]valueobject.MoleculeStatus)
	}
	f.statuses[id] = status
	return nil
}

type fakeInitialRepo struct {
	existing  map[valueobject.GRNumber]bool
	initials  []entity.MapInitial
	inserted  []entity.MapInitial
	insertErr map[valueobject.GRNumber]error
}

func (f *fakeInitialRepo) FindByID(_ context.Context, id int64) (*entity.MapInitial, error) {
	for i := range f.initials {
		if f.initials[i].MapInitialID == id {
			return &f.initials[i], nil
		}
	}
	return nil, nil
}

func (f *fakeInitialRepo) FindByGRNumber(_ context.Context, grNumber valueobject.GRNumber) (*entity.MapInitial, error) {
	for i := range f.initials {
		if f.initials[i].GrNumber == grNumber {
			return &f.initials[i], nil
		}
	}
	return nil, nil
}

func (f *fakeInitialRepo) FindAll(_ context.Context, filters outbound.InitialFilters) ([]entity.MapInitial, error) {
	out := f.initials
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}

func (f *fakeInitialRepo) Exists(_ context.Context, grNumber valueobject.GRNumber) (bool, error) {
	return f.existing[grNumber], nil
}

func (f *fakeInitialRepo) Insert(_ context.Context, initial *entity.MapInitial) error {
	if err := f.insertErr[initial.GrNumber]; err != nil {
		return err
	}
	f.inserted = append(f.inserted, *initial)
	return nil
}

type fakeEvaluationRepo struct {
	byMolecule map[int64]*entity.MoleculeEvaluation
}

func (f *fakeEvaluationRepo) FindFirstByMoleculeID(_ context.Context, moleculeID int64) (*entity.MoleculeEvaluation, error) {
	return f.byMolecule[moleculeID], nil
}

type fakeSessionRepo struct {
	sessions  []entity.MapSession
	inserted  []entity.MapSession
	insertErr error
	nextID    int64
}

func (f *fakeSessionRepo) FindByID(_ context.Context, sessionID int64) (*entity.MapSession, error) {
	for i := range f.sessions {
		if f.sessions[i].SessionID == sessionID {
			return &f.sessions[i], nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) FindWithResults(_ context.Context, filters outbound.SessionFilters) ([]entity.MapSession, error) {
	var out []entity.MapSession
	for _, s := range f.sessions {
		if filters.Stage != "" && (s.Stage == nil || *s.Stage != filters.Stage) {
			continue
		}
		if !filters.IncludeResults {
			s.Results = nil
		}
		out = append(out, s)
		if filters.Limit > 0 && len(out) == filters.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) Insert(_ context.Context, session *entity.MapSession) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.nextID++
	session.SessionID = f.nextID
	f.inserted = append(f.inserted, *session)
	return nil
}

type fakeResultRepo struct {
	inserted  []entity.MapResult
	insertErr map[valueobject.GRNumber]error
}

func (f *fakeResultRepo) FindBySessionID(_ context.Context, sessionID int64) ([]entity.MapResult, error) {
	var out []entity.MapResult
	for _, r := range f.inserted {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResultRepo) Insert(_ context.Context, result *entity.MapResult) error {
	if err := f.insertErr[result.GrNumber]; err != nil {
		return err
	}
	f.inserted = append(f.inserted, *result)
	return nil
}

type fakeAssessmentRepo struct {
	existingNames map[string]bool
	inserted      []entity.Assessment
	insertErr     error
}

func (f *fakeAssessmentRepo) FindByID(_ context.Context, _ int64) (*entity.Assessment, error) {
	return nil, nil
}

func (f *fakeAssessmentRepo) ExistsBySessionName(_ context.Context, sessionName string) (bool, error) {
	return f.existingNames[sessionName], nil
}

func (f *fakeAssessmentRepo) Insert(_ context.Context, assessment *entity.Assessment) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, *assessment)
	return nil
}

type fakeMapToolTaxonomy struct {
	families    map[string]*entity.MapToolOdorFamily
	descriptors map[string]*entity.MapToolOdorDescriptor
	nextID      int64
}

func newFakeMapToolTaxonomy() *fakeMapToolTaxonomy {
	return &fakeMapToolTaxonomy{
		families:    make(map[string]*entity.MapToolOdorFamily),
		descriptors: make(map[string]*entity.MapToolOdorDescriptor),
	}
}

func (f *fakeMapToolTaxonomy) FindFamilyByCode(_ context.Context, code string) (*entity.MapToolOdorFamily, error) {
	return f.families[code], nil
}

func (f *fakeMapToolTaxonomy) FamilyExists(_ context.Context, code string) (bool, error) {
	return f.families[code] != nil, nil
}

func (f *fakeMapToolTaxonomy) InsertFamily(_ context.Context, family *entity.MapToolOdorFamily) error {
	f.nextID++
	family.ID = f.nextID
	f.families[family.Code] = family
	return nil
}

func (f *fakeMapToolTaxonomy) DescriptorExists(_ context.Context, code string) (bool, error) {
	return f.descriptors[code] != nil, nil
}

func (f *fakeMapToolTaxonomy) InsertDescriptor(_ context.Context, descriptor *entity.MapToolOdorDescriptor) error {
	f.nextID++
	descriptor.ID = f.nextID
	f.descriptors[descriptor.Code] = descriptor
	return nil
}

type fakeAdamoTaxonomy struct {
	families       []entity.AdamoOdorFamily
	descriptors    []entity.AdamoOdorDescriptor
	descriptorsErr error
}

func (f *fakeAdamoTaxonomy) FindFamilies(_ context.Context, _ int) ([]entity.AdamoOdorFamily, error) {
	return f.families, nil
}

func (f *fakeAdamoTaxonomy) FindDescriptors(_ context.Context, _ int) ([]entity.AdamoOdorDescriptor, error) {
	if f.descriptorsErr != nil {
		return nil, f.descriptorsErr
	}
	return f.descriptors, nil
}

type fakeCharacterizationRepo struct {
	byGRNumber map[valueobject.GRNumber]*entity.OdorCharacterization
}

func (f *fakeCharacterizationRepo) FindByGRNumber(_ context.Context, grNumber valueobject.GRNumber) (*entity.OdorCharacterization, error) {
	return f.byGRNumber[grNumber], nil
}

func (f *fakeCharacterizationRepo) FindAll(_ context.Context, limit int) ([]entity.OdorCharacterization, error) {
	var out []entity.OdorCharacterization
	for _, c := range f.byGRNumber {
		out = append(out, *c)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeIgnoredRepo struct {
	entries []entity.IgnoredMolecule
}

func (f *fakeIgnoredRepo) FindAll(_ context.Context, _ int) ([]entity.IgnoredMolecule, error) {
	return f.entries, nil
}

// fakeUnitOfWork runs the group against fresh repos and discards them on
// failure, mimicking rollback.
type fakeUnitOfWork struct {
	sessions   *fakeSessionRepo
	results    *fakeResultRepo
	rolledBack bool
}

func (f *fakeUnitOfWork) WithinTransaction(ctx context.Context, fn func(outbound.MapSessionRepository, outbound.MapResultRepository) error) error {
	sessions := &fakeSessionRepo{nextID: f.sessions.nextID}
	results := &fakeResultRepo{insertErr: f.results.insertErr}
	if err := fn(sessions, results); err != nil {
		f.rolledBack = true
		return err
	}
	f.sessions.inserted = append(f.sessions.inserted, sessions.inserted...)
	f.sessions.nextID = sessions.nextID
	f.results.inserted = append(f.results.inserted, results.inserted...)
	return nil
}

// recordingPublisher captures events for ordering assertions.
type recordingPublisher struct {
	mu    sync.Mutex
	runs  []outbound.RunEvent
	steps []outbound.StepEvent
}

func (p *recordingPublisher) PublishRunStarted(_ context.Context, event outbound.RunEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.runs = append(p.runs, event)
	return nil
}

func (p *recordingPublisher) PublishStepStarted(_ context.Context, event outbound.StepEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.steps = append(p.steps, event)
	return nil
}

func (p *recordingPublisher) PublishRunCompleted(_ context.Context, event outbound.RunEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.runs = append(p.runs, event)
	return nil
}

func (p *recordingPublisher) stepNames() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.steps))
	for _, s := range p.steps {
		names = append(names, s.Step)
	}
	return names
}

// testPorts assembles a fully wired fake environment.
type testPorts struct {
	molecules   *fakeMoleculeRepo
	initials    *fakeInitialRepo
	evaluations *fakeEvaluationRepo
	sessions    *fakeSessionRepo
	results     *fakeResultRepo
	assessments *fakeAssessmentRepo
	mtTaxonomy  *fakeMapToolTaxonomy
	adTaxonomy  *fakeAdamoTaxonomy
	chars       *fakeCharacterizationRepo
	ignored     *fakeIgnoredRepo
	uow         *fakeUnitOfWork
	publisher   *recordingPublisher
}

func newTestPorts() *testPorts {
	sessions := &fakeSessionRepo{}
	results := &fakeResultRepo{insertErr: map[valueobject.GRNumber]error{}}
	return &testPorts{
		molecules:   &fakeMoleculeRepo{},
		initials:    &fakeInitialRepo{existing: map[valueobject.GRNumber]bool{}, insertErr: map[valueobject.GRNumber]error{}},
		evaluations: &fakeEvaluationRepo{byMolecule: map[int64]*entity.MoleculeEvaluation{}},
		sessions:    sessions,
		results:     results,
		assessments: &fakeAssessmentRepo{existingNames: map[string]bool{}},
		mtTaxonomy:  newFakeMapToolTaxonomy(),
		adTaxonomy:  &fakeAdamoTaxonomy{},
		chars:       &fakeCharacterizationRepo{byGRNumber: map[valueobject.GRNumber]*entity.OdorCharacterization{}},
		ignored:     &fakeIgnoredRepo{},
		uow:         &fakeUnitOfWork{sessions: sessions, results: results},
		publisher:   &recordingPublisher{},
	}
}

func (p *testPorts) adamoPorts() outbound.Resolution[outbound.AdamoPorts] {
	return outbound.Configured(outbound.AdamoPorts{
		Initials:          p.initials,
		Sessions:          p.sessions,
		Results:           p.results,
		Characterizations: p.chars,
		Taxonomy:          p.adTaxonomy,
		Ignored:           p.ignored,
		UnitOfWork:        p.uow,
	})
}

func (p *testPorts) mapToolPorts() outbound.Resolution[outbound.MapToolPorts] {
	return outbound.Configured(outbound.MapToolPorts{
		Molecules:   p.molecules,
		Assessments: p.assessments,
		Evaluations: p.evaluations,
		Taxonomy:    p.mtTaxonomy,
	})
}

func mustGR(s string) valueobject.GRNumber {
	gr, err := valueobject.NewGRNumber(s)
	if err != nil {
		panic(fmt.Sprintf("bad test GR number %q: %v", s, err))
	}
	return gr
}
