package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"imaging-report-service/internal/adapters"
	"imaging-report-service/internal/constants"
	"imaging-report-service/internal/domain/dtos"
	"imaging-report-service/internal/domain/entities"
	"imaging-report-service/internal/domain/repositories"
)

// Project-id prefixes accepted by the import; rows outside this list are
// skipped, not imported and not erroring the batch.
var allowedProjectPrefixes = []string{"MRH", "MMH", "CLF"}

// Legacy reporter accounts that imported dummy reports are attributed to.
const (
	legacyMrReporterEmail  = "nicholas.ferris@monash.edu"
	legacyMshReporterEmail = "s.ahern@axisdi.com.au"
	legacyPetReporterEmail = "paul.beech@monash.edu"
)

var (
	// DARIS composite identifiers: 1008.2.<subject>.<study>[.1.<visit>]
	darisIDRe = regexp.MustCompile(`^1008\.2\.(\d+)\.(\d+)(?:\.1\.(\d+))?.*`)
	// Visit identifiers: leading numeral plus optional suffix.
	visitIDRe = regexp.MustCompile(`^(\d+)(.*)$`)
)

// ImportServiceImpl implements ImportServiceContract.
type ImportServiceImpl struct {
	projects repositories.ProjectRepositoryContract
	subjects repositories.SubjectRepositoryContract
	sessions repositories.SessionRepositoryContract
	reports  repositories.ReportRepositoryContract
	users    repositories.UserRepositoryContract
	archive  adapters.ArchiveClientFactory
	logger   *slog.Logger
}

// NewImportService creates a new ImportServiceImpl.
func NewImportService(
	projects repositories.ProjectRepositoryContract,
	subjects repositories.SubjectRepositoryContract,
	sessions repositories.SessionRepositoryContract,
	reports repositories.ReportRepositoryContract,
	users repositories.UserRepositoryContract,
	archive adapters.ArchiveClientFactory,
	logger *slog.Logger,
) ImportServiceContract {
	return &ImportServiceImpl{
		projects: projects,
		subjects: subjects,
		sessions: sessions,
		reports:  reports,
		users:    users,
		archive:  archive,
		logger:   logger,
	}
}

func (s *ImportServiceImpl) ImportFile(ctx context.Context, path string) (*dtos.ImportResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open export file at %s: %w", path, err)
	}
	defer file.Close()
	rows, err := parseExportRows(file)
	if err != nil {
		return nil, err
	}
	return s.ImportRows(ctx, rows)
}

func (s *ImportServiceImpl) ImportRows(ctx context.Context, rows []dtos.ImportRow) (*dtos.ImportResult, error) {
	result := &dtos.ImportResult{
		Imported: []string{},
		Previous: []string{},
		Skipped:  []dtos.ImportRow{},
	}

	mrReporter, err := s.users.FindByEmail(ctx, legacyMrReporterEmail)
	if err != nil {
		return nil, err
	}
	mshReporter, err := s.users.FindByEmail(ctx, legacyMshReporterEmail)
	if err != nil {
		return nil, err
	}
	petReporter, err := s.users.FindByEmail(ctx, legacyPetReporterEmail)
	if err != nil {
		return nil, err
	}

	client, err := s.archive(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	for _, row := range rows {
		status := constants.Present
		projectID := strings.TrimSpace(row.ProjectID)
		if projectID == "" {
			status = constants.InvalidLabel
		} else if !allowedProject(projectID) {
			s.logger.Info("skipping row with unrecognised project",
				"study_id", row.StudyID, "project_id", projectID)
			result.Skipped = append(result.Skipped, row)
			continue
		}
		project, err := s.projects.GetOrCreateByMbiID(ctx, projectID)
		if err != nil {
			return nil, err
		}

		subjectMbiID := strings.TrimSpace(row.SubjectID)
		studyID := strings.TrimSpace(row.StudyID)
		firstName := strings.TrimSpace(row.FirstName)
		lastName := strings.TrimSpace(row.LastName)

		dateOfBirth := time.Time{}
		if strings.TrimSpace(row.DOB) != "" {
			dateOfBirth, err = parseFlexibleDate(row.DOB)
			if err != nil {
				return nil, fmt.Errorf("could not parse date of birth of %s (%s)",
					studyID, row.DOB)
			}
		}
		subject, err := s.subjects.GetOrCreateByMbiID(ctx, subjectMbiID, firstName, lastName, dateOfBirth)
		if err != nil {
			return nil, err
		}

		exists, err := s.sessions.Exists(ctx, studyID)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Previous = append(result.Previous, studyID)
			continue
		}

		scanDate, err := parseFlexibleDate(row.ScanDate)
		if err != nil {
			return nil, fmt.Errorf("could not parse scan date for %s (%s)",
				studyID, row.ScanDate)
		}

		xnatID, derived := deriveXnatID(projectID, row.DarisID, row.XnatSubjectID, row.XnatVisitID)
		if derived != constants.Present {
			status = derived
		}

		allReportsSubmitted := strings.TrimSpace(row.MrReport) != ""
		if strings.HasPrefix(projectID, "MMH") {
			allReportsSubmitted = allReportsSubmitted && strings.TrimSpace(row.PetReport) != ""
		}

		var archiveScans []entities.ArchiveScan
		if allReportsSubmitted {
			status = constants.NotChecked
		} else if status != constants.InvalidLabel && status != constants.UnimelbDaris {
			archiveScans, err = client.ExperimentScans(ctx, xnatID)
			if errors.Is(err, adapters.ErrExperimentNotFound) {
				status = constants.NotFound
				archiveScans = nil
			} else if err != nil {
				return nil, fmt.Errorf("problem reading scans of %s (%s): %w",
					studyID, xnatID, err)
			}
		}

		session := &entities.ImgSession{
			ID:         studyID,
			ProjectID:  project.ID,
			SubjectID:  subject.ID,
			XnatID:     xnatID,
			ScanDate:   scanDate,
			DataStatus: status,
			Priority:   constants.Low,
		}
		if err := s.sessions.CreateWithScans(ctx, session, archiveScans); err != nil {
			return nil, err
		}

		if strings.TrimSpace(row.MrReport) != "" {
			reporter := legacyMrReporter(row.MrReport, mrReporter, mshReporter)
			if err := s.createDummyReport(ctx, studyID, reporter, constants.MRI, scanDate); err != nil {
				return nil, err
			}
		}
		if strings.TrimSpace(row.PetReport) != "" {
			if err := s.createDummyReport(ctx, studyID, petReporter, constants.PET, scanDate); err != nil {
				return nil, err
			}
		}

		result.Imported = append(result.Imported, studyID)
	}

	s.logger.Info("import finished",
		"imported", len(result.Imported),
		"previous", len(result.Previous),
		"skipped", len(result.Skipped))
	return result, nil
}

func (s *ImportServiceImpl) createDummyReport(ctx context.Context, sessionID string, reporter *entities.User, modality constants.Modality, scanDate time.Time) error {
	report := &entities.Report{
		ID:         uuid.New(),
		SessionID:  sessionID,
		ReporterID: reporter.ID,
		Findings:   "",
		Conclusion: constants.NotRecorded,
		Modality:   modality,
		Date:       scanDate,
		Dummy:      true,
	}
	return s.reports.Create(ctx, report)
}

func allowedProject(projectID string) bool {
	for _, prefix := range allowedProjectPrefixes {
		if strings.HasPrefix(projectID, prefix) {
			return true
		}
	}
	return false
}

// legacyMrReporter selects the account a legacy MR report is attributed to.
// The MSH-substring rule is carried over unchanged from the historical
// FileMaker report-source text.
func legacyMrReporter(mrReport string, ferris, ahern *entities.User) *entities.User {
	if strings.Contains(mrReport, "MSH") {
		return ahern
	}
	return ferris
}

// parseFlexibleDate parses a DD/MM/YYYY date, also accepting '.' as the
// separator.
func parseFlexibleDate(raw string) (time.Time, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ".", "/")
	return time.Parse("2/1/2006", cleaned)
}

// deriveXnatID derives the canonical archive session label for a row,
// classifying identifiers that cannot be parsed. The returned status is
// PRESENT when derivation fully succeeded; once a step fails, the first
// failure classification wins.
func deriveXnatID(projectID, darisID, xnatSubjectID, xnatVisitID string) (string, constants.DataStatus) {
	status := constants.Present
	var subjectID, visitID string

	if strings.TrimSpace(darisID) != "" {
		if m := darisIDRe.FindStringSubmatch(strings.TrimSpace(darisID)); m != nil {
			subjectID = m[1]
			visitID = m[3]
			if visitID == "" {
				visitID = "1"
			}
		} else if strings.HasPrefix(strings.TrimSpace(darisID), "1.5.") {
			status = constants.UnimelbDaris
		} else {
			status = constants.InvalidLabel
		}
	} else {
		subjectID = strings.TrimSpace(xnatSubjectID)
		visitID = strings.TrimSpace(xnatVisitID)
		if subjectID == "" || visitID == "" {
			status = constants.InvalidLabel
		}
	}

	if n, err := strconv.Atoi(subjectID); err == nil {
		subjectID = fmt.Sprintf("%03d", n)
	}

	visitPrefix := "MR"
	if strings.HasPrefix(projectID, "MMH") {
		visitPrefix = "MRPT"
	}
	if m := visitIDRe.FindStringSubmatch(visitID); m != nil {
		numeral, _ := strconv.Atoi(m[1])
		visitID = fmt.Sprintf("%s%02d%s", visitPrefix, numeral, m[2])
	} else if status == constants.Present {
		status = constants.InvalidLabel
	}

	xnatID := strings.ToUpper(strings.Join([]string{projectID, subjectID, visitID}, "_"))
	return xnatID, status
}

// Column names of the FileMaker export.
const (
	colProjectID     = "ProjectID"
	colSubjectID     = "SubjectID"
	colStudyID       = "StudyID"
	colFirstName     = "FirstName"
	colLastName      = "LastName"
	colDOB           = "DOB"
	colScanDate      = "ScanDate"
	colDarisID       = "DarisID"
	colXnatSubjectID = "XnatSubjectID"
	colXnatVisitID   = "XnatVisitID"
	colMrReport      = "MrReport"
	colPetReport     = "PetReport"
)

// parseExportRows reads a header-keyed CSV export into import rows. Columns
// absent from the header (the legacy identifier encodings vary between
// exports) read as empty values.
func parseExportRows(file *os.File) ([]dtos.ImportRow, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading export file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[strings.TrimSpace(name)] = i
	}
	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}
	rows := make([]dtos.ImportRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, dtos.ImportRow{
			ProjectID:     field(record, colProjectID),
			SubjectID:     field(record, colSubjectID),
			StudyID:       field(record, colStudyID),
			FirstName:     field(record, colFirstName),
			LastName:      field(record, colLastName),
			DOB:           field(record, colDOB),
			ScanDate:      field(record, colScanDate),
			DarisID:       field(record, colDarisID),
			XnatSubjectID: field(record, colXnatSubjectID),
			XnatVisitID:   field(record, colXnatVisitID),
			MrReport:      field(record, colMrReport),
			PetReport:     field(record, colPetReport),
		})
	}
	return rows, nil
}
