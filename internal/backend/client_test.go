package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaikyD/stitch-storefront/internal/domain"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/", 2*time.Second)
}

func TestBoutiquesNormalizesShapes(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/boutiques", r.URL.Path)
		assert.Equal(t, "560001", r.URL.Query().Get("pincode"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[
			{"_id":"b1","name":" Stitch Co ","imageUrls":"a.jpg","ratings":"4.5","isActive":false,
			 "address":{"street":"1 MG Road","city":"Bengaluru"}},
			{"id":"b2","name":"Needle","imageUrls":["x.jpg"," ","y.jpg"],"rating":3}
		]}`))
	})

	list, err := c.Boutiques(context.Background(), "560001")
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "b1", list[0].ID)
	assert.Equal(t, "Stitch Co", list[0].Name)
	assert.Equal(t, []string{"a.jpg"}, list[0].ImageURLs)
	assert.Equal(t, 4.5, list[0].Rating)
	assert.False(t, list[0].IsOpen)
	assert.Equal(t, "1 MG Road, Bengaluru", list[0].Address)

	assert.Equal(t, "b2", list[1].ID)
	assert.Equal(t, []string{"x.jpg", "y.jpg"}, list[1].ImageURLs)
	assert.True(t, list[1].IsOpen)
}

func TestEmptyListIsNotAnError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	})
	list, err := c.Boutiques(context.Background(), "999999")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNullDataIsAnEmptyResult(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":null,"message":"no boutiques near 560001"}`))
	})

	list, err := c.Boutiques(context.Background(), "560001")
	require.NoError(t, err)
	assert.Empty(t, list)

	styles, err := c.PredesignedStyles(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, styles)

	_, err = c.Boutique(context.Background(), "b9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestErrorMessagePreserved(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"Pincode not serviceable"}`))
	})
	_, err := c.Boutiques(context.Background(), "123456")

	var ae *APIError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Equal(t, "Pincode not serviceable", ae.Message)
}

func TestErrorFallsBackToStatusText(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	_, err := c.Services(context.Background())
	assert.Equal(t, http.StatusServiceUnavailable, StatusOf(err))
	assert.Contains(t, err.Error(), "Service Unavailable")
}

func TestSuccessFalseOn200(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"quota"}`))
	})
	_, err := c.Services(context.Background())
	var ae *APIError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "quota", ae.Message)
}

func TestNotFoundMapsToDomain(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"boutique missing"}`))
	})
	_, err := c.Boutique(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}

func TestBearerTokenSent(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success":true,"data":[{"_id":"a1","fullName":"Asha","phone":9876543210,"pincode":"560001","isDefault":true,"type":"Home"}]}`))
	})
	list, err := c.Addresses(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a1", list[0].ID)
	assert.Equal(t, "9876543210", list[0].Phone)
	assert.Equal(t, domain.AddressHome, list[0].Type)
}

func TestStylesAndMaterialsPriceAsString(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/services/s1/predesigned-styles":
			_, _ = w.Write([]byte(`[{"_id":"st1","title":"Princess cut","price":"1800","imageUrl":"p.jpg"}]`))
		case "/api/services/s1/materials":
			_, _ = w.Write([]byte(`{"data":[{"id":"silk","name":"Silk","pricePerMeter":2500,"category":"silk"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	styles, err := c.PredesignedStyles(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, styles, 1)
	assert.Equal(t, "Princess cut", styles[0].Name)
	assert.Equal(t, 1800.0, styles[0].Price)
	assert.Equal(t, "p.jpg", styles[0].Image)

	mats, err := c.Materials(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, mats, 1)
	assert.Equal(t, 2500.0, mats[0].Price)
	assert.Equal(t, "silk", mats[0].Type)
}

func TestVerifyAndSubmit(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/verify":
			_, _ = w.Write([]byte(`{"success":true,"data":{"token":"jwt","user":{"_id":"u1","phoneNumber":"9876543210"}}}`))
		case "/api/orders":
			assert.Equal(t, http.MethodPost, r.Method)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"success":true,"data":{"_id":"ord-77"}}`))
		}
	})

	u, tok, err := c.Verify(context.Background(), "otp-id-token")
	require.NoError(t, err)
	assert.Equal(t, "jwt", tok)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "9876543210", u.Phone)

	ref, err := c.SubmitOrder(context.Background(), tok, domain.PlacedOrder{})
	require.NoError(t, err)
	assert.Equal(t, "ord-77", ref)
}

func TestContextCancelled(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Services(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, StatusOf(err))
}
