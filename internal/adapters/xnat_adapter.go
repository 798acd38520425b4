package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"imaging-report-service/internal/domain/entities"
)

// XNATClient implements ArchiveClient against the XNAT REST API using basic
// authentication. One client maps to one archive instance.
type XNATClient struct {
	baseURL  string
	username string
	password string
	http     *http.Client
	logger   *slog.Logger
}

var _ ArchiveClient = (*XNATClient)(nil)

// NewXNATClient creates an archive client for the XNAT server at baseURL.
func NewXNATClient(baseURL, username, password string, logger *slog.Logger) *XNATClient {
	return &XNATClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		http:     &http.Client{Timeout: 5 * time.Minute},
		logger:   logger,
	}
}

// resultSet is the envelope XNAT wraps every JSON listing in.
type resultSet[T any] struct {
	ResultSet struct {
		Result []T `json:"Result"`
	} `json:"ResultSet"`
}

type scanRow struct {
	ID   string `json:"ID"`
	Type string `json:"type"`
}

type fileRow struct {
	Name   string `json:"Name"`
	Digest string `json:"digest"`
	URI    string `json:"URI"`
}

func (c *XNATClient) ExperimentScans(ctx context.Context, label string) ([]entities.ArchiveScan, error) {
	var listing resultSet[scanRow]
	err := c.getJSON(ctx, fmt.Sprintf("/data/experiments/%s/scans", url.PathEscape(label)), &listing)
	if err != nil {
		return nil, err
	}
	scans := make([]entities.ArchiveScan, 0, len(listing.ResultSet.Result))
	for _, row := range listing.ResultSet.Result {
		scans = append(scans, entities.ArchiveScan{XnatID: row.ID, TypeName: row.Type})
	}
	return scans, nil
}

func (c *XNATClient) ExperimentScanIDs(ctx context.Context, label string) ([]string, error) {
	scans, err := c.ExperimentScans(ctx, label)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(scans))
	for i, scan := range scans {
		ids[i] = scan.XnatID
	}
	return ids, nil
}

func (c *XNATClient) DownloadScan(ctx context.Context, experimentLabel, scanID, destDir string) (string, error) {
	files, err := c.scanFiles(ctx, experimentLabel, scanID)
	if err != nil {
		return "", err
	}
	filesDir := filepath.Join(destDir, scanID, "files")
	if err := os.MkdirAll(filesDir, 0o755); err != nil {
		return "", fmt.Errorf("creating download dir: %w", err)
	}
	for _, file := range files {
		if err := c.downloadFile(ctx, file.URI, filepath.Join(filesDir, file.Name)); err != nil {
			return "", fmt.Errorf("downloading %s of scan %s: %w", file.Name, scanID, err)
		}
	}
	c.logger.Debug("downloaded scan files",
		"experiment", experimentLabel, "scan", scanID, "files", len(files))
	return filesDir, nil
}

func (c *XNATClient) ScanDigests(ctx context.Context, experimentLabel, scanID string) (map[string]string, error) {
	files, err := c.scanFiles(ctx, experimentLabel, scanID)
	if err != nil {
		return nil, err
	}
	digests := make(map[string]string)
	for _, file := range files {
		if strings.HasSuffix(file.Name, ".dcm") {
			digests[file.Name] = file.Digest
		}
	}
	return digests, nil
}

func (c *XNATClient) EnsureSubject(ctx context.Context, projectID, subjectLabel string) error {
	path := fmt.Sprintf("/data/projects/%s/subjects/%s",
		url.PathEscape(projectID), url.PathEscape(subjectLabel))
	return c.put(ctx, path, nil)
}

func (c *XNATClient) EnsureExperiment(ctx context.Context, projectID, subjectLabel, experimentLabel string) error {
	path := fmt.Sprintf("/data/projects/%s/subjects/%s/experiments/%s?xsiType=xnat:mrSessionData",
		url.PathEscape(projectID), url.PathEscape(subjectLabel), url.PathEscape(experimentLabel))
	return c.put(ctx, path, nil)
}

func (c *XNATClient) CreateScan(ctx context.Context, experimentLabel, scanID, scanType string) error {
	path := fmt.Sprintf("/data/experiments/%s/scans/%s?xsiType=xnat:mrScanData&xnat:mrScanData/type=%s",
		url.PathEscape(experimentLabel), url.PathEscape(scanID), url.QueryEscape(scanType))
	return c.put(ctx, path, nil)
}

func (c *XNATClient) UploadFile(ctx context.Context, experimentLabel, scanID, resource, localPath, remoteName string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("opening %s for upload: %w", localPath, err)
	}
	defer file.Close()
	path := fmt.Sprintf("/data/experiments/%s/scans/%s/resources/%s/files/%s?inbody=true",
		url.PathEscape(experimentLabel), url.PathEscape(scanID),
		url.PathEscape(resource), url.PathEscape(remoteName))
	return c.put(ctx, path, file)
}

func (c *XNATClient) ExtractHeaders(ctx context.Context, experimentLabel string) error {
	path := fmt.Sprintf("/data/experiments/%s?pullDataFromHeaders=true",
		url.PathEscape(experimentLabel))
	return c.put(ctx, path, nil)
}

// Close is a no-op: requests authenticate individually, so there is no
// session token to release.
func (c *XNATClient) Close() {}

func (c *XNATClient) scanFiles(ctx context.Context, experimentLabel, scanID string) ([]fileRow, error) {
	var listing resultSet[fileRow]
	path := fmt.Sprintf("/data/experiments/%s/scans/%s/files",
		url.PathEscape(experimentLabel), url.PathEscape(scanID))
	if err := c.getJSON(ctx, path, &listing); err != nil {
		return nil, err
	}
	return listing.ResultSet.Result, nil
}

func (c *XNATClient) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path+"?format=json", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrExperimentNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %s", path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decoding response: %w", path, err)
	}
	return nil
}

func (c *XNATClient) put(ctx context.Context, path string, body io.Reader) error {
	resp, err := c.do(ctx, http.MethodPut, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("PUT %s: unexpected status %s", path, resp.Status)
	}
	return nil
}

func (c *XNATClient) downloadFile(ctx context.Context, uri, localPath string) error {
	resp, err := c.do(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %s", uri, resp.Status)
	}
	out, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", localPath, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("writing %s: %w", localPath, err)
	}
	return nil
}

func (c *XNATClient) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	req.SetBasicAuth(c.username, c.password)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}
