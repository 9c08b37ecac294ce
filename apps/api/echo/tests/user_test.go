package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	. "github.com/tshimanga/elimu/apps/api/echo"
	testutil "github.com/tshimanga/elimu/tests"
)

func decodeAuthResponse(t *testing.T, body []byte) AuthResponse {
	t.Helper()
	var res AuthResponse
	if err := json.Unmarshal(body, &res); err != nil {
		t.Fatalf("decoding auth response: %v (%s)", err, body)
	}
	return res
}

func Test_userApi_register(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodPost, "/api/auth/register", []byte(`{"email":"jane@test.cd","password":"s3cret","name":"Jane"}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v, want %v (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	res := decodeAuthResponse(t, rec.Body.Bytes())
	if res.Token == "" {
		t.Error("register returned no token")
	}
	if res.User.ID == "" || res.User.Email != "jane@test.cd" || res.User.Name != "Jane" {
		t.Errorf("user = %+v", res.User)
	}

	// the fresh token works on a protected route right away
	req, rec = newAuthRequest(http.MethodGet, "/api/user/progress", res.Token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("token unusable: code = %v (%s)", rec.Code, rec.Body.String())
	}

	tests := []httpTest{
		{
			name: "Duplicate email", body: []byte(`{"email":"jane@test.cd","password":"other","name":"Impostor"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "a user with this email already exists"}),
		},
		{
			name: "Empty payload", body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"email":    "this field is required",
				"password": "this field is required",
				"name":     "this field is required",
			}),
		},
		{
			name: "Invalid email", body: []byte(`{"email":"lol","password":"s3cret","name":"Lol"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "enter a valid email address"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/auth/register", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

// Email comparison is case-insensitive on both ends: registration lowers
// the address and login cleans its input the same way.
func Test_userApi_register_emailCleaned(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodPost, "/api/auth/register", []byte(`{"email":" JANE@Test.cd ","password":"s3cret","name":"Jane"}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v (%s)", rec.Code, rec.Body.String())
	}
	res := decodeAuthResponse(t, rec.Body.Bytes())
	if res.User.Email != "jane@test.cd" {
		t.Errorf("email = %q, want %q", res.User.Email, "jane@test.cd")
	}

	req, rec = newRequest(http.MethodPost, "/api/auth/login", []byte(`{"email":"jane@test.cd","password":"s3cret"}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("login after cleaned register failed: %v (%s)", rec.Code, rec.Body.String())
	}
}

func Test_userApi_login(t *testing.T) {
	app := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "Jane", "jane@test.cd", "s3cret")

	req, rec := newRequest(http.MethodPost, "/api/auth/login", []byte(`{"email":"jane@test.cd","password":"s3cret"}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v, want %v (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	res := decodeAuthResponse(t, rec.Body.Bytes())
	if res.Token == "" {
		t.Error("login returned no token")
	}
	if res.User.ID != usr.ID || res.User.Email != usr.Email || res.User.Name != usr.Name {
		t.Errorf("user = %+v", res.User)
	}

	invalidCreds := marchallObj(t, httpErr{Error: "invalid credentials"})
	tests := []httpTest{
		{
			name: "Unknown email", body: []byte(`{"email":"nobody@test.cd","password":"s3cret"}`),
			wantCode: http.StatusUnauthorized, wantData: invalidCreds,
		},
		{
			name: "Wrong password", body: []byte(`{"email":"jane@test.cd","password":"wrong"}`),
			wantCode: http.StatusUnauthorized, wantData: invalidCreds,
		},
		{
			name: "Empty payload", body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"email":    "this field is required",
				"password": "this field is required",
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/auth/login", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

// An unknown email and a wrong password must be indistinguishable to
// the caller: same status, same body.
func Test_userApi_login_uniformFailure(t *testing.T) {
	app := setup(t)

	testutil.CreateUser(t, usrRepo, "Jane", "jane@test.cd", "s3cret")

	req1, rec1 := newRequest(http.MethodPost, "/api/auth/login", []byte(`{"email":"nobody@test.cd","password":"s3cret"}`))
	app.ServeHTTP(rec1, req1)

	req2, rec2 := newRequest(http.MethodPost, "/api/auth/login", []byte(`{"email":"jane@test.cd","password":"wrong"}`))
	app.ServeHTTP(rec2, req2)

	if rec1.Code != rec2.Code {
		t.Errorf("codes differ: %v vs %v", rec1.Code, rec2.Code)
	}
	if rec1.Body.String() != rec2.Body.String() {
		t.Errorf("bodies differ: %s vs %s", rec1.Body.String(), rec2.Body.String())
	}
}
