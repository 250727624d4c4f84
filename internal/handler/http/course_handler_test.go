package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/courses-api/internal/course"
	apiHttp "github.com/vasiliy-maslov/courses-api/internal/handler/http"
	"github.com/vasiliy-maslov/courses-api/internal/user"
)

func authedRequest(method, target, body string, u *user.User, svc *MockUserService) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetBasicAuth(u.Email, "secret1")
	svc.On("Authenticate", mock.Anything, u.Email, "secret1").Return(u, nil).Once()
	return req
}

func testUser() *user.User {
	return &user.User{
		ID:        uuid.Must(uuid.NewV4()),
		FirstName: "Ana",
		LastName:  "Lee",
		Email:     "ana@x.com",
	}
}

func TestCourseHandler_ListCourses(t *testing.T) {
	mockUserSvc := new(MockUserService)
	mockCourseSvc := new(MockCourseService)
	router := newTestRouter(mockUserSvc, mockCourseSvc)

	ownerID := uuid.Must(uuid.NewV4())
	estimatedTime := "12 hours"
	storedCourses := []course.Course{
		{
			ID:            uuid.Must(uuid.NewV4()),
			Title:         "Advanced",
			Description:   "The hard parts",
			EstimatedTime: &estimatedTime,
			UserID:        ownerID,
		},
		{
			ID:          uuid.Must(uuid.NewV4()),
			Title:       "Intro",
			Description: "Basics",
			UserID:      ownerID,
		},
	}

	mockCourseSvc.On("ListCourses", mock.Anything).
		Return(storedCourses, nil).
		Once()

	req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var actualResponse []apiHttp.CourseResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&actualResponse))

	expectedResponse := []apiHttp.CourseResponse{
		{
			ID:            storedCourses[0].ID,
			Title:         "Advanced",
			Description:   "The hard parts",
			EstimatedTime: &estimatedTime,
			UserID:        ownerID,
		},
		{
			ID:          storedCourses[1].ID,
			Title:       "Intro",
			Description: "Basics",
			UserID:      ownerID,
		},
	}
	if diff := cmp.Diff(expectedResponse, actualResponse); diff != "" {
		t.Errorf("course list mismatch (-want +got):\n%s", diff)
	}
	mockCourseSvc.AssertExpectations(t)
}

func TestCourseHandler_ListCourses_Empty(t *testing.T) {
	mockUserSvc := new(MockUserService)
	mockCourseSvc := new(MockCourseService)
	router := newTestRouter(mockUserSvc, mockCourseSvc)

	mockCourseSvc.On("ListCourses", mock.Anything).
		Return([]course.Course{}, nil).
		Once()

	req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String(), "Empty list must serialize as [], not null")
}

func TestCourseHandler_GetCourse_Success(t *testing.T) {
	mockUserSvc := new(MockUserService)
	mockCourseSvc := new(MockCourseService)
	router := newTestRouter(mockUserSvc, mockCourseSvc)

	storedCourse := &course.Course{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       "Intro",
		Description: "Basics",
		UserID:      uuid.Must(uuid.NewV4()),
	}

	mockCourseSvc.On("GetCourseByID", mock.Anything, storedCourse.ID).
		Return(storedCourse, nil).
		Once()

	req := httptest.NewRequest(http.MethodGet, "/api/courses/"+storedCourse.ID.String(), nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var actualResponse apiHttp.CourseResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&actualResponse))
	assert.Equal(t, storedCourse.ID, actualResponse.ID)
	assert.Equal(t, storedCourse.UserID, actualResponse.UserID)
	mockCourseSvc.AssertExpectations(t)
}

func TestCourseHandler_GetCourse_NotFound(t *testing.T) {
	mockUserSvc := new(MockUserService)
	mockCourseSvc := new(MockCourseService)
	router := newTestRouter(mockUserSvc, mockCourseSvc)

	missingID := uuid.Must(uuid.NewV4())
	mockCourseSvc.On("GetCourseByID", mock.Anything, missingID).
		Return(nil, course.ErrNotFound).
		Once()

	req := httptest.NewRequest(http.MethodGet, "/api/courses/"+missingID.String(), nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Course Not Found", decodeMessage(t, rr))
}

func TestCourseHandler_GetCourse_InvalidID(t *testing.T) {
	mockUserSvc := new(MockUserService)
	mockCourseSvc := new(MockCourseService)
	router := newTestRouter(mockUserSvc, mockCourseSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/courses/not-a-uuid", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	mockCourseSvc.AssertNotCalled(t, "GetCourseByID", mock.Anything, mock.Anything)
}

func TestCourseHandler_CreateCourse_OwnerFromContext(t *testing.T) {
	mockUserSvc := new(MockUserService)
	mockCourseSvc := new(MockCourseService)
	router := newTestRouter(mockUserSvc, mockCourseSvc)

	authedUser := testUser()
	createdID := uuid.Must(uuid.NewV4())
	spoofedOwner := uuid.Must(uuid.NewV4())

	mockCourseSvc.On("CreateCourse", mock.Anything, mock.MatchedBy(func(c *course.Course) bool {
		// Owner must come from the authenticated user, not the body.
		return c.Title == "Intro" && c.Description == "Basics" && c.UserID == authedUser.ID
	})).Return(&course.Course{ID: createdID, UserID: authedUser.ID}, nil).Once()

	body := `{"title":"Intro","description":"Basics","userId":"` + spoofedOwner.String() + `"}`
	req := authedRequest(http.MethodPost, "/api/courses", body, authedUser, mockUserSvc)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/courses/"+createdID.String(), rr.Header().Get("Location"))
	assert.Empty(t, rr.Body.String())
	mockCourseSvc.AssertExpectations(t)
	mockUserSvc.AssertExpectations(t)
}

func TestCourseHandler_CreateCourse_ValidationErrors(t *testing.T) {
	mockUserSvc := new(MockUserService)
	mockCourseSvc := new(MockCourseService)
	router := newTestRouter(mockUserSvc, mockCourseSvc)

	authedUser := testUser()
	req := authedRequest(http.MethodPost, "/api/courses", `{"estimatedTime":"12 hours"}`, authedUser, mockUserSvc)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var errorResponse apiHttp.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errorResponse))
	assert.Equal(t, []string{
		`Please provide a "title"`,
		`Please provide a "description"`,
	}, errorResponse.Errors)

	mockCourseSvc.AssertNotCalled(t, "CreateCourse", mock.Anything, mock.Anything)
}

func TestCourseHandler_CreateCourse_Unauthenticated(t *testing.T) {
	mockUserSvc := new(MockUserService)
	mockCourseSvc := new(MockCourseService)
	router := newTestRouter(mockUserSvc, mockCourseSvc)

	req := httptest.NewRequest(http.MethodPost, "/api/courses", bytes.NewBufferString(`{"title":"Intro","description":"Basics"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	mockCourseSvc.AssertNotCalled(t, "CreateCourse", mock.Anything, mock.Anything)
}

func TestCourseHandler_UpdateCourse_Success(t *testing.T) {
	mockUserSvc := new(MockUserService)
	mockCourseSvc := new(MockCourseService)
	router := newTestRouter(mockUserSvc, mockCourseSvc)

	authedUser := testUser()
	courseID := uuid.Must(uuid.NewV4())

	mockCourseSvc.On("UpdateCourse", mock.Anything, courseID, authedUser.ID, mock.MatchedBy(func(c *course.Course) bool {
		return c.Title == "Intro, revised" && c.Description == "More basics"
	})).Return(nil).Once()

	body := `{"title":"Intro, revised","description":"More basics"}`
	req := authedRequest(http.MethodPut, "/api/courses/"+courseID.String(), body, authedUser, mockUserSvc)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
	mockCourseSvc.AssertExpectations(t)
}

func TestCourseHandler_UpdateCourse_NotOwner(t *testing.T) {
	mockUserSvc := new(MockUserService)
	mockCourseSvc := new(MockCourseService)
	router := newTestRouter(mockUserSvc, mockCourseSvc)

	authedUser := testUser()
	courseID := uuid.Must(uuid.NewV4())

	mockCourseSvc.On("UpdateCourse", mock.Anything, courseID, authedUser.ID, mock.AnythingOfType("*course.Course")).
		Return(course.ErrNotOwner).
		Once()

	body := `{"title":"Intro","description":"Basics"}`
	req := authedRequest(http.MethodPut, "/api/courses/"+courseID.String(), body, authedUser, mockUserSvc)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "You can only edit your own courses", decodeMessage(t, rr))
}

func TestCourseHandler_UpdateCourse_NotFound(t *testing.T) {
	mockUserSvc := new(MockUserService)
	mockCourseSvc := new(MockCourseService)
	router := newTestRouter(mockUserSvc, mockCourseSvc)

	authedUser := testUser()
	courseID := uuid.Must(uuid.NewV4())

	mockCourseSvc.On("UpdateCourse", mock.Anything, courseID, authedUser.ID, mock.AnythingOfType("*course.Course")).
		Return(course.ErrNotFound).
		Once()

	body := `{"title":"Intro","description":"Basics"}`
	req := authedRequest(http.MethodPut, "/api/courses/"+courseID.String(), body, authedUser, mockUserSvc)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Course Not Found", decodeMessage(t, rr))
}

func TestCourseHandler_UpdateCourse_ValidationErrors(t *testing.T) {
	mockUserSvc := new(MockUserService)
	mockCourseSvc := new(MockCourseService)
	router := newTestRouter(mockUserSvc, mockCourseSvc)

	authedUser := testUser()
	courseID := uuid.Must(uuid.NewV4())

	req := authedRequest(http.MethodPut, "/api/courses/"+courseID.String(), `{"title":"Intro"}`, authedUser, mockUserSvc)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var errorResponse apiHttp.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errorResponse))
	assert.Equal(t, []string{`Please provide a "description"`}, errorResponse.Errors)

	mockCourseSvc.AssertNotCalled(t, "UpdateCourse", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCourseHandler_DeleteCourse_Success(t *testing.T) {
	mockUserSvc := new(MockUserService)
	mockCourseSvc := new(MockCourseService)
	router := newTestRouter(mockUserSvc, mockCourseSvc)

	authedUser := testUser()
	courseID := uuid.Must(uuid.NewV4())

	mockCourseSvc.On("DeleteCourse", mock.Anything, courseID, authedUser.ID).
		Return(nil).
		Once()

	req := authedRequest(http.MethodDelete, "/api/courses/"+courseID.String(), "", authedUser, mockUserSvc)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
	mockCourseSvc.AssertExpectations(t)
}

func TestCourseHandler_DeleteCourse_NotOwner(t *testing.T) {
	mockUserSvc := new(MockUserService)
	mockCourseSvc := new(MockCourseService)
	router := newTestRouter(mockUserSvc, mockCourseSvc)

	authedUser := testUser()
	courseID := uuid.Must(uuid.NewV4())

	mockCourseSvc.On("DeleteCourse", mock.Anything, courseID, authedUser.ID).
		Return(course.ErrNotOwner).
		Once()

	req := authedRequest(http.MethodDelete, "/api/courses/"+courseID.String(), "", authedUser, mockUserSvc)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "You can only delete your own courses", decodeMessage(t, rr))
}

func TestCourseHandler_DeleteCourse_NotFound(t *testing.T) {
	mockUserSvc := new(MockUserService)
	mockCourseSvc := new(MockCourseService)
	router := newTestRouter(mockUserSvc, mockCourseSvc)

	authedUser := testUser()
	courseID := uuid.Must(uuid.NewV4())

	mockCourseSvc.On("DeleteCourse", mock.Anything, courseID, authedUser.ID).
		Return(course.ErrNotFound).
		Once()

	req := authedRequest(http.MethodDelete, "/api/courses/"+courseID.String(), "", authedUser, mockUserSvc)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Course Not Found", decodeMessage(t, rr))
}
