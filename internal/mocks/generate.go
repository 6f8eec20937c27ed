// Package mocks provides mock implementations of the ports used by the turnos client.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockClinicAPI(ctrl)
//	api.EXPECT().ListProfessionals(gomock.Any()).Return(list, nil)
package mocks

// Generate mock for KeyValueStore (session persistence): Get, Set, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=key_value_store_mock.go github.com/turnos-app/turnos/internal/ports KeyValueStore

// Generate mocks for the unauthenticated auth endpoints and navigation: Login, Refresh, Navigate
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_api_mock.go github.com/turnos-app/turnos/internal/ports AuthAPI,Navigator

// Generate mock for the authenticated clinic REST API used by the web handlers.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=clinic_api_mock.go github.com/turnos-app/turnos/internal/ports ClinicAPI
