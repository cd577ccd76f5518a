//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carbon-tracker/backend/config"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	"github.com/carbon-tracker/backend/internal/infra/dependency"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/carbon-tracker/backend/internal/integration/persistence/model"
	"github.com/carbon-tracker/backend/internal/integration/seed"
	"github.com/carbon-tracker/backend/test/integration/mock"
)

const (
	testJWTSecret = "test-jwt-secret-key-for-testing-purposes"
	testPassword  = "SecurePass123!"
)

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		Name: "carbon-tracker-api",
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			InitializeScenario(s)
		},
		Options: &godog.Options{
			Format:      "pretty",
			Paths:       []string{"../features"},
			Tags:        tags,
			Concurrency: 1,
			Strict:      true,
			TestingT:    t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type testContext struct {
	uri            string
	headers        map[string]string
	client         *http.Client
	response       *response
	db             *mock.Db
	timeMock       *mock.Time
	emailAPI       *mock.EmailProvider
	accessToken    string
	refreshToken   string
	guestSessionID string
	entryID        string
	goalID         string
}

type response struct {
	status int
	body   any
}

var (
	serverInit     sync.Once
	portInit       sync.Once
	emailAPIInit   sync.Once
	testServerPort int
	testEmailAPI   *mock.EmailProvider
	testInjector   *dependency.Injector

	// shared by every scenario; the server reads it through WithClock
	testClock = mock.NewTime()
)

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

func initializeEmailAPI() *mock.EmailProvider {
	emailAPIInit.Do(func() {
		testEmailAPI = mock.NewEmailProvider()
		testEmailAPI.Start()
	})
	return testEmailAPI
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:      fmt.Sprintf("http://localhost:%d", testServerPort),
		client:   &http.Client{Timeout: 10 * time.Second},
		timeMock: testClock,
		emailAPI: initializeEmailAPI(),
		db:       mock.NewDb(model.All(), model.Migrations()),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the emission catalog is seeded$`, test.theEmissionCatalogIsSeeded)
	ctx.Given(`^today is "([^"]*)"$`, test.todayIs)

	// Session steps
	ctx.Given(`^I am signed in as "([^"]*)"$`, test.iAmSignedInAs)
	ctx.Given(`^I am a guest$`, test.iAmAGuest)
	ctx.Given(`^the guest session expires$`, test.theGuestSessionExpires)

	// Entry steps
	ctx.Given(`^I log the following entries:$`, test.iLogTheFollowingEntries)
	ctx.When(`^I log (\d+) entries of activity "([^"]*)" at the same time$`, test.iLogEntriesAtTheSameTime)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^the email worker runs$`, test.theEmailWorkerRuns)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// Email assertion steps
	ctx.Given(`^the email provider rejects the next (\d+) requests? with status (\d+)$`, test.theEmailProviderRejects)
	ctx.Then(`^the email provider should have received (\d+) emails?$`, test.theEmailProviderShouldHaveReceived)
	ctx.Then(`^the email provider should have received an email to "([^"]*)" with subject containing "([^"]*)"$`, test.theEmailProviderShouldHaveReceivedAnEmailTo)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.guestSessionID = ""
	t.entryID = ""
	t.goalID = ""
	t.timeMock.Reset()

	t.emailAPI.Reset()

	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	return t.db.ClearDB()
}

func (t *testContext) startServer() error {
	var startErr error

	serverInit.Do(func() {
		gin.SetMode(gin.TestMode)

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret
		cfg.Email.ResendAPIKey = "re_test_key"
		cfg.Email.ResendBaseURL = t.emailAPI.GetUrl()
		cfg.Email.WorkerEnabled = false

		injector, err := dependency.NewInjector(cfg, t.db.DbConn, mock.NewRedis(),
			dependency.WithClock(t.timeMock.Now),
		)
		if err != nil {
			startErr = err
			return
		}
		testInjector = injector

		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", testServerPort),
			Handler: injector.Router.Setup(cfg.Server.Environment),
		}
		go func() {
			_ = server.ListenAndServe()
		}()
	})
	if startErr != nil {
		return startErr
	}
	if testInjector == nil {
		return errors.New("server failed to start in an earlier scenario")
	}

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return errors.New("server did not become healthy")
}

func (t *testContext) theAPIServerIsRunning() error {
	return t.startServer()
}

// The clock is injected into the server, so the current time only moves entry dates.
func (t *testContext) todayIs(date string) error {
	d, err := entity.ParseDate(date)
	if err != nil {
		return err
	}
	t.timeMock.SetCurrentTime(d.Time().Add(12 * time.Hour))
	return nil
}

func (t *testContext) theEmissionCatalogIsSeeded() error {
	types, err := seed.DefaultCatalog()
	if err != nil {
		return err
	}
	_, err = testInjector.SeedCatalog.Execute(context.Background(), types)
	return err
}

func (t *testContext) iAmSignedInAs(email string) error {
	body := fmt.Sprintf(`{"email": %q, "name": "Test User", "password": %q}`, email, testPassword)
	if err := t.executeRequest("POST", "/api/v1/auth/register", []byte(body)); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("registration failed with status %d: %v", t.response.status, t.response.body)
	}
	if t.accessToken == "" {
		return errors.New("registration did not return an access token")
	}
	return nil
}

func (t *testContext) iAmAGuest() error {
	if err := t.executeRequest("POST", "/api/v1/auth/guest", nil); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("guest sign in failed with status %d: %v", t.response.status, t.response.body)
	}
	if t.guestSessionID == "" {
		return errors.New("guest sign in did not return a session id")
	}
	t.headers[middleware.GuestSessionHeader] = t.guestSessionID
	return nil
}

func (t *testContext) theGuestSessionExpires() error {
	mock.FastForwardRedis(testInjector.Config.Guest.SessionTTL + time.Minute)
	return nil
}

func (t *testContext) iLogTheFollowingEntries(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return errors.New("entries table needs a header row and at least one entry")
	}

	header := table.Rows[0].Cells
	for _, row := range table.Rows[1:] {
		fields := map[string]string{}
		for i, cell := range row.Cells {
			fields[header[i].Value] = t.replacePlaceholders(cell.Value)
		}

		amount, err := strconv.ParseFloat(fields["amount"], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", fields["amount"], err)
		}
		payload, err := json.Marshal(map[string]any{
			"activity_type_id": fields["activity_type_id"],
			"amount":           amount,
			"occurred_on":      fields["occurred_on"],
		})
		if err != nil {
			return err
		}

		if err := t.executeRequest("POST", "/api/v1/entries", payload); err != nil {
			return err
		}
		if t.response.status != http.StatusCreated {
			return fmt.Errorf("logging entry %v failed with status %d: %v", fields, t.response.status, t.response.body)
		}
	}
	return nil
}

func (t *testContext) iLogEntriesAtTheSameTime(count int, activityTypeID string) error {
	payload, err := json.Marshal(map[string]any{
		"activity_type_id": activityTypeID,
		"amount":           1,
		"occurred_on":      entity.DateOf(t.timeMock.Now().UTC()).String(),
	})
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	errs := make(chan error, count)
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, err := t.newRequest("POST", "/api/v1/entries", payload)
			if err != nil {
				errs <- err
				return
			}
			resp, err := t.client.Do(req)
			if err != nil {
				errs <- err
				return
			}
			defer resp.Body.Close()
			_, _ = io.Copy(io.Discard, resp.Body)
			if resp.StatusCode != http.StatusCreated {
				errs <- fmt.Errorf("logging entry failed with status %d", resp.StatusCode)
			}
		}()
	}
	wg.Wait()
	close(errs)
	return errors.Join(collect(errs)...)
}

func collect(errs <-chan error) []error {
	var out []error
	for err := range errs {
		out = append(out, err)
	}
	return out
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = "" // Clear access token to simulate unauthenticated request
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = t.replacePlaceholders(value)
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) theEmailWorkerRuns() error {
	testInjector.EmailWorker.ProcessNow(context.Background())
	return nil
}

func (t *testContext) replacePlaceholders(content string) string {
	today := entity.DateOf(t.timeMock.Now().UTC())

	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{guest_session_id}}", t.guestSessionID)
	content = strings.ReplaceAll(content, "{{entry_id}}", t.entryID)
	content = strings.ReplaceAll(content, "{{goal_id}}", t.goalID)
	content = strings.ReplaceAll(content, "{{today}}", today.String())
	content = strings.ReplaceAll(content, "{{yesterday}}", today.AddDays(-1).String())
	return content
}

func (t *testContext) newRequest(method, path string, payload []byte) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}
	return req, nil
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	req, err := t.newRequest(method, path, payload)
	if err != nil {
		return err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody
	t.captureIdentifiers(responseBody)
	return nil
}

// captureIdentifiers remembers tokens and ids so later steps can reference them.
func (t *testContext) captureIdentifiers(body map[string]any) {
	if token, ok := body["access_token"].(string); ok && token != "" {
		t.accessToken = token
	}
	if token, ok := body["refresh_token"].(string); ok && token != "" {
		t.refreshToken = token
	}
	if id, ok := body["guest_session_id"].(string); ok && id != "" {
		t.guestSessionID = id
	}
	if e, ok := body["entry"].(map[string]any); ok {
		if id, ok := e["id"].(string); ok {
			t.entryID = id
		}
	}
	if id, ok := body["id"].(string); ok {
		if _, isGoal := body["target_value"]; isGoal {
			t.goalID = id
		}
	}
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != t.replacePlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	var items []any
	if value := getFieldValue(body, field); value != nil {
		var ok bool
		if items, ok = value.([]any); !ok {
			return fmt.Errorf("field '%s' is not a list: %v", field, value)
		}
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d: %v", field, count, len(items), items)
	}
	return nil
}

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
		if result.Error != nil {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		query := t.db.DbConn.Unscoped()
		for key, value := range criteria {
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		}

		result := query.Find(entitySlicePtr.Interface())
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theEmailProviderRejects(count, status int) error {
	t.emailAPI.FailNext(count, status)
	return nil
}

func (t *testContext) theEmailProviderShouldHaveReceived(count int) error {
	if got := len(t.emailAPI.Sent()); got != count {
		return fmt.Errorf("expected %d emails sent to the provider, got %d", count, got)
	}
	return nil
}

func (t *testContext) theEmailProviderShouldHaveReceivedAnEmailTo(recipient, subject string) error {
	sent := t.emailAPI.Sent()
	for _, email := range sent {
		for _, to := range email.To {
			if strings.Contains(to, recipient) && strings.Contains(email.Subject, subject) {
				return nil
			}
		}
	}
	return fmt.Errorf("no email to %q with subject containing %q among %d sent: %+v", recipient, subject, len(sent), sent)
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
