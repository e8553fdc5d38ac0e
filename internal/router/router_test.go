// internal/router/router_test.go
package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vendordesk/backend/internal/config"
	"github.com/vendordesk/backend/internal/models"
	"github.com/vendordesk/backend/internal/utils"
)

type RouterTestSuite struct {
	suite.Suite
	router    *gin.Engine
	backupAPI *httptest.Server
	token     string
}

func (suite *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", suite.T().Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(db.AutoMigrate(&models.Purchase{}, &models.SequenceCounter{}))

	suite.backupAPI = httptest.NewServer(http.HandlerFunc(fakeBackupAPI))

	cfg := &config.Config{
		Environment: "test",
		JWT:         config.JWTConfig{SecretKey: "test-secret"},
		Admin: config.AdminConfig{
			Email:    "admin@vendordesk.local",
			Password: "s3cret",
		},
		Backup: config.BackupConfig{
			BaseURL:     suite.backupAPI.URL,
			APIKey:      "test-key",
			ProjectID:   "proj-1",
			ClusterName: "cluster-a",
			Timeout:     5,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	}

	suite.router, err = Initialize(db, cfg)
	suite.Require().NoError(err)

	// Mint the admin token directly; the login contract has its own test
	suite.token, err = utils.GenerateAdminToken(cfg.Admin.Email)
	suite.Require().NoError(err)

	suite.T().Cleanup(func() {
		suite.backupAPI.Close()
		sqlDB.Close()
	})
}

func fakeBackupAPI(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/groups/proj-1/clusters/cluster-a/backup":
		json.NewEncoder(w).Encode(map[string]string{"id": "backup-123"})
	case r.Method == http.MethodGet && r.URL.Path == "/groups/proj-1/clusters/cluster-a/backup":
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]string{
				{"id": "backup-123", "created": "2026-01-02T15:04:05Z", "description": "Manual backup x", "status": "completed"},
			},
		})
	case r.Method == http.MethodPost && r.URL.Path == "/groups/proj-1/clusters/cluster-a/restore":
		json.NewEncoder(w).Encode(map[string]string{"id": "restore-9"})
	default:
		http.NotFound(w, r)
	}
}

func (suite *RouterTestSuite) request(method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+suite.token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RouterTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func validPurchaseBody() map[string]interface{} {
	return map[string]interface{}{
		"industries":   "Pharma",
		"type":         "Solvent",
		"product":      "Acetone",
		"vendorName":   "Acme Chemicals",
		"businessType": "Importer",
		"sourceType":   "Direct",
		"country":      "Germany",
		"contacts": []map[string]string{
			{"contactPerson": "Ravi", "contactPhone": "9876543210", "contactEmail": "ravi@acme.example"},
		},
	}
}

func (suite *RouterTestSuite) TestHealth() {
	w := suite.request(http.MethodGet, "/health", nil, false)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *RouterTestSuite) TestAdminLoginContract() {
	w := suite.request(http.MethodPost, "/auth/admin", map[string]string{
		"email":    "admin@vendordesk.local",
		"password": "s3cret",
	}, false)
	suite.Equal(http.StatusOK, w.Code)

	body := suite.decode(w)
	suite.Equal(true, body["success"])
	suite.Equal("Login successful", body["message"])
	suite.NotEmpty(body["token"])

	// Failures still answer 200 with success=false, never an HTTP error
	w = suite.request(http.MethodPost, "/auth/admin", map[string]string{
		"email":    "admin@vendordesk.local",
		"password": "wrong",
	}, false)
	suite.Equal(http.StatusOK, w.Code)

	body = suite.decode(w)
	suite.Equal(false, body["success"])
	suite.Equal("Invalid credentials", body["message"])
	suite.NotContains(body, "token")
}

func (suite *RouterTestSuite) TestMutatingRoutesRequireToken() {
	w := suite.request(http.MethodPost, "/purchases", validPurchaseBody(), false)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodDelete, "/purchases/1", nil, false)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodPost, "/backup/create", nil, false)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *RouterTestSuite) TestPurchaseCRUDFlow() {
	// Empty store previews id 1
	w := suite.request(http.MethodGet, "/purchases/count", nil, false)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(float64(1), suite.decode(w)["nextId"])

	// Create
	w = suite.request(http.MethodPost, "/purchases", validPurchaseBody(), true)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	created := suite.decode(w)
	suite.Equal(float64(1), created["id"])
	suite.NotEmpty(created["date"], "date defaults to creation time")

	// List
	w = suite.request(http.MethodGet, "/purchases", nil, false)
	suite.Equal(http.StatusOK, w.Code)
	var listed []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &listed))
	suite.Len(listed, 1)

	// Get by id
	w = suite.request(http.MethodGet, "/purchases/1", nil, false)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Acetone", suite.decode(w)["product"])

	// Partial update keeps omitted fields
	w = suite.request(http.MethodPut, "/purchases/1", map[string]interface{}{
		"product": "Isopropyl Alcohol",
	}, true)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	updated := suite.decode(w)
	suite.Equal("Isopropyl Alcohol", updated["product"])
	suite.Equal("Acme Chemicals", updated["vendorName"])

	// Delete, then gone
	w = suite.request(http.MethodDelete, "/purchases/1", nil, true)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Purchase deleted successfully", suite.decode(w)["message"])

	w = suite.request(http.MethodGet, "/purchases/1", nil, false)
	suite.Equal(http.StatusNotFound, w.Code)

	// Display ids are never reused
	w = suite.request(http.MethodGet, "/purchases/count", nil, false)
	suite.Equal(float64(2), suite.decode(w)["nextId"])
}

func (suite *RouterTestSuite) TestInvalidIDFormat() {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w := suite.request(method, "/purchases/abc", map[string]interface{}{}, true)
		suite.Equal(http.StatusBadRequest, w.Code, "%s /purchases/abc", method)
		suite.Equal("Invalid ID format", suite.decode(w)["message"])
	}
}

func (suite *RouterTestSuite) TestCreateValidationErrorsMapTo400() {
	body := validPurchaseBody()
	body["businessType"] = "Manufacturer" // sourceType/country still set

	w := suite.request(http.MethodPost, "/purchases", body, true)
	suite.Equal(http.StatusBadRequest, w.Code)

	resp := suite.decode(w)
	suite.Equal("Validation failed", resp["message"])
	suite.NotEmpty(resp["errors"])

	body = validPurchaseBody()
	body["contacts"] = []map[string]string{}
	w = suite.request(http.MethodPost, "/purchases", body, true)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *RouterTestSuite) TestVendorLookup() {
	w := suite.request(http.MethodGet, "/purchases/vendor/Acme%20Chemicals", nil, false)
	suite.Equal(http.StatusNotFound, w.Code)

	suite.request(http.MethodPost, "/purchases", validPurchaseBody(), true)
	suite.request(http.MethodPost, "/purchases", validPurchaseBody(), true)

	w = suite.request(http.MethodGet, "/purchases/vendor/Acme%20Chemicals", nil, false)
	suite.Equal(http.StatusOK, w.Code)

	var matches []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &matches))
	suite.Len(matches, 2)
}

func (suite *RouterTestSuite) TestGradeFieldsSerializeAsNumbers() {
	body := validPurchaseBody()
	body["TECH"] = "12.50"
	body["USP"] = 7

	w := suite.request(http.MethodPost, "/purchases", body, true)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.request(http.MethodGet, "/purchases", nil, false)
	var listed []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &listed))
	suite.Require().Len(listed, 1)

	suite.Equal(12.5, listed[0]["TECH"])
	suite.Equal(7.0, listed[0]["USP"])
	suite.Equal(0.0, listed[0]["FEED"])

	// Plain numbers on the wire, not quoted decimals
	suite.Contains(w.Body.String(), `"TECH":12.5`)
}

func (suite *RouterTestSuite) TestBackupEndpoints() {
	w := suite.request(http.MethodPost, "/backup/create", nil, true)
	suite.Equal(http.StatusOK, w.Code)
	created := suite.decode(w)
	suite.Equal(true, created["success"])
	suite.Equal("backup-123", created["backupId"])
	suite.NotEmpty(created["timestamp"])

	w = suite.request(http.MethodGet, "/backup/list", nil, true)
	suite.Equal(http.StatusOK, w.Code)
	listed := suite.decode(w)
	suite.Equal(true, listed["success"])
	suite.Len(listed["backups"], 1)

	w = suite.request(http.MethodPost, "/backup/restore/backup-123", nil, true)
	suite.Equal(http.StatusOK, w.Code)
	restored := suite.decode(w)
	suite.Equal(true, restored["success"])
	suite.Equal("restore-9", restored["restoreJobId"])
}

func (suite *RouterTestSuite) TestBackupFailuresMapTo500() {
	// The fake API 404s unknown paths; point restore at a bad cluster by
	// hitting an id the fake rejects via closed server instead
	suite.backupAPI.Close()

	w := suite.request(http.MethodPost, "/backup/create", nil, true)
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal(false, suite.decode(w)["success"])
}

func (suite *RouterTestSuite) TestExportReturnsFullTable() {
	suite.request(http.MethodPost, "/purchases", validPurchaseBody(), true)

	w := suite.request(http.MethodGet, "/backup/export", nil, true)
	suite.Equal(http.StatusOK, w.Code)

	doc := suite.decode(w)
	suite.Equal(float64(1), doc["count"])
	suite.NotEmpty(doc["exportedAt"])
	suite.Len(doc["purchases"], 1)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
