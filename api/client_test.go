package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lumenik/install-client/model"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL+"/api", staticTokens("tok-123"), opts...)
	require.NoError(t, err)

	return client, server
}

func Test_Client_AuthHeader(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"juegos": [], "total": 0}`))
	}))

	_, err := client.Games(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", gotAuth)
}

func Test_Client_ErrorNormalization(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/juegos/consola/PS4":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "Consola inválida"}`))
		case "/api/trabajos/t1":
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"mensaje": "Token requerido"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`garbage`))
		}
	}))

	ctx := context.Background()

	_, err := client.GamesByPlatform(ctx, "PS4")
	apiErr := &Error{}
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 404, apiErr.Codigo)
	require.Equal(t, "Consola inválida", apiErr.Mensaje)

	_, err = client.OrderByID(ctx, "t1")
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 401, apiErr.Codigo)
	require.Equal(t, "Token requerido", apiErr.Mensaje)

	// unreadable body still yields a uniform error
	_, err = client.Orders(ctx)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 500, apiErr.Codigo)
	require.Equal(t, "Error desconocido", apiErr.Mensaje)
}

func Test_Client_LoadingReleasedOnAllPaths(t *testing.T) {
	var mu sync.Mutex
	var calls []bool
	record := func(active bool) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, active)
	}

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/juegos" {
			w.Write([]byte(`{"juegos": [], "total": 0}`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "boom"}`))
	}), WithLoadingFunc(record))

	ctx := context.Background()

	_, err := client.Games(ctx)
	require.NoError(t, err)

	_, err = client.Orders(ctx)
	require.Error(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []bool{true, false, true, false}, calls)
}

func Test_Client_InflightGuard(t *testing.T) {
	release := make(chan struct{})
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{"mensaje": "ok"}`))
	}))

	ctx := context.Background()
	draft := OrderDraft{ClientID: "u1", ServiceType: model.ServiceInstall}

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- client.CreateOrder(ctx, draft)
	}()

	// second identical action while the first is pending fails fast
	require.Eventually(t, func() bool {
		err := client.CreateOrder(ctx, draft)
		return errors.Is(err, model.ErrBusy)
	}, time.Second, 10*time.Millisecond)

	close(release)
	require.NoError(t, <-firstDone)

	// guard is released once the first call resolves
	require.NoError(t, client.CreateOrder(ctx, draft))
}

func Test_Client_LoginAndEnvelopes(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			require.Equal(t, http.MethodPost, r.Method)
			w.Write([]byte(`{"token": "jwt", "usuario_id": "u1", "nombre_usuario": "ana", "nombre_completo": "Ana P.", "rol": "cliente"}`))
		case "/api/trabajos/cliente/u1":
			w.Write([]byte(`{"registros": [{"id": "t1", "estado": "pendiente", "costo": 100000, "monto_pagado": 30000}], "total": 1}`))
		case "/api/trabajos/pendientes":
			require.Equal(t, "e9", r.URL.Query().Get("empleado_id"))
			w.Write([]byte(`{"registros": [], "total": 0}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "no"}`))
		}
	}))

	ctx := context.Background()

	res, err := client.Login(ctx, "ana", "secret")
	require.NoError(t, err)
	require.Equal(t, "jwt", res.Token)
	require.Equal(t, model.RoleClient, res.User().Role)
	require.Equal(t, "u1", res.User().ID)

	orders, err := client.OrdersByClient(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, model.StatusPending, orders[0].Status)
	require.Equal(t, 70000.0, orders[0].Outstanding())

	_, err = client.PendingOrders(ctx, "e9")
	require.NoError(t, err)
}
