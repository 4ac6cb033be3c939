package mypage

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"bookweb/internal/entity"
	"bookweb/internal/logging"
	"bookweb/internal/session"
	"bookweb/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T) (*HTTPHandler, *MockAPI) {
	ctrl := gomock.NewController(t)
	api := NewMockAPI(ctrl)
	sessions, _ := testutil.NewManager()
	return NewHTTPHandler(NewService(api, logging.Discard()), sessions, testutil.NewRenderer(t), logging.Discard()), api
}

func loaded() *session.Session {
	s := testutil.LoggedInSession()
	s.MyPage = session.MyPageState{
		MyBooks:    []entity.Book{bookA, bookB},
		LikedBooks: []entity.Book{bookB, bookC},
	}
	return s
}

func post(path, id string, form url.Values, s *session.Session) *http.Request {
	r := testutil.NewFormRequest(path, form, s)
	r.SetPathValue("id", id)
	return r
}

func TestHTTPHandler_Show(t *testing.T) {
	h, api := newHandler(t)
	api.EXPECT().MyBooks(gomock.Any()).Return([]entity.Book{bookA}, nil)
	api.EXPECT().LikedBooks(gomock.Any()).Return([]entity.Book{bookC}, nil)

	s := testutil.LoggedInSession()
	w := httptest.NewRecorder()
	h.Show(w, testutil.NewRequest(http.MethodGet, "/mypage", s))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="my-1"`)
	assert.Contains(t, w.Body.String(), `id="liked-3"`)
	assert.Equal(t, []entity.Book{bookA}, s.MyPage.MyBooks)
}

func TestHTTPHandler_DeleteAsksFirst(t *testing.T) {
	h, _ := newHandler(t)

	w := httptest.NewRecorder()
	h.Delete(w, post("/mypage/books/1/delete", "1", nil, loaded()))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "confirm-yes")
	assert.Contains(t, w.Body.String(), "<strong>A</strong>")
}

func TestHTTPHandler_ShowAfterActionUsesStoredLists(t *testing.T) {
	h, _ := newHandler(t)
	s := loaded()
	s.ResumeOn("/mypage")

	w := httptest.NewRecorder()
	h.Show(w, testutil.NewRequest(http.MethodGet, "/mypage", s))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="my-1"`)
	assert.Contains(t, w.Body.String(), `id="liked-3"`)
	assert.Empty(t, s.Resume)
}

func TestHTTPHandler_DeleteDeclinedMakesNoCalls(t *testing.T) {
	h, _ := newHandler(t)
	s := loaded()

	w := httptest.NewRecorder()
	h.Delete(w, post("/mypage/books/1/delete", "1", url.Values{"confirm": {"no"}}, s))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/mypage", testutil.Location(w))
	assert.Len(t, s.MyPage.MyBooks, 2)
	assert.Empty(t, s.Flash)
}

func TestHTTPHandler_DeleteConfirmed(t *testing.T) {
	h, api := newHandler(t)
	s := loaded()
	api.EXPECT().DeleteMyBook(gomock.Any(), int64(1)).Return(nil)
	api.EXPECT().MyBooks(gomock.Any()).Return([]entity.Book{bookB}, nil)

	w := httptest.NewRecorder()
	h.Delete(w, post("/mypage/books/1/delete", "1", url.Values{"confirm": {"yes"}}, s))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/mypage", testutil.Location(w))
	assert.Equal(t, []string{"Deleted."}, s.Flash)
	assert.Equal(t, []entity.Book{bookB}, s.MyPage.MyBooks)
	assert.Equal(t, []entity.Book{bookB, bookC}, s.MyPage.LikedBooks)

	// The landing GET renders the refetched list without loading again.
	w = httptest.NewRecorder()
	h.Show(w, testutil.NewRequest(http.MethodGet, "/mypage", s))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Deleted.")
	assert.NotContains(t, w.Body.String(), `id="my-1"`)
}

func TestHTTPHandler_DeleteFailedAlerts(t *testing.T) {
	h, api := newHandler(t)
	s := loaded()
	api.EXPECT().DeleteMyBook(gomock.Any(), int64(1)).Return(assert.AnError)

	w := httptest.NewRecorder()
	h.Delete(w, post("/mypage/books/1/delete", "1", url.Values{"confirm": {"yes"}}, s))

	assert.Equal(t, "/mypage", testutil.Location(w))
	assert.Equal(t, []string{"Delete failed."}, s.Flash)
	assert.Len(t, s.MyPage.MyBooks, 2)
}

func TestHTTPHandler_UnlikeRemovesFromLikedList(t *testing.T) {
	h, api := newHandler(t)
	s := loaded()
	api.EXPECT().ToggleLike(gomock.Any(), int64(2)).Return(entity.LikeStatus{Liked: false}, nil)

	w := httptest.NewRecorder()
	h.ToggleLike(w, post("/mypage/likes/2", "2", nil, s))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/mypage", testutil.Location(w))
	assert.Equal(t, "/mypage", s.Resume)
	assert.Equal(t, []entity.Book{bookC}, s.MyPage.LikedBooks)
	assert.Equal(t, []entity.Book{bookA, bookB}, s.MyPage.MyBooks)
}

func TestHTTPHandler_ToggleLikeFailedAlerts(t *testing.T) {
	h, api := newHandler(t)
	s := loaded()
	api.EXPECT().ToggleLike(gomock.Any(), int64(2)).Return(entity.LikeStatus{}, assert.AnError)

	w := httptest.NewRecorder()
	h.ToggleLike(w, post("/mypage/likes/2", "2", nil, s))

	assert.Equal(t, "/mypage", testutil.Location(w))
	assert.Equal(t, []string{"Could not update like."}, s.Flash)
	assert.Equal(t, []entity.Book{bookB, bookC}, s.MyPage.LikedBooks)
}

func TestHTTPHandler_EditCarriesDraft(t *testing.T) {
	h, _ := newHandler(t)
	s := loaded()

	w := httptest.NewRecorder()
	h.Edit(w, post("/mypage/books/2/edit", "2", nil, s))

	assert.Equal(t, "/update", testutil.Location(w))
	require.NotNil(t, s.Nav.Draft)
	assert.Equal(t, int64(2), s.Nav.Draft.BookID)
	assert.Equal(t, "B", s.Nav.Draft.Title)
}

func TestHTTPHandler_EditUnknownBook(t *testing.T) {
	h, _ := newHandler(t)
	s := loaded()

	w := httptest.NewRecorder()
	h.Edit(w, post("/mypage/books/9/edit", "9", nil, s))

	assert.Equal(t, "/mypage", testutil.Location(w))
	assert.Nil(t, s.Nav.Draft)
}
