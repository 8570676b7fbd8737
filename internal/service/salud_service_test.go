package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/EmmanuelQuintero/Control-Plus-7/internal/dto"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/model"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/repository"
)

// ── Auxiliares de prueba ──

func setupTestSaludService() (SaludService, *repository.Repository) {
	repo := &repository.Repository{
		Usuario:      newMockUsuarioRepo(),
		Actividad:    newMockActividadRepo(),
		Sueno:        newMockSuenoRepo(),
		Alimentacion: newMockAlimentacionRepo(),
		Notificacion: newMockNotificacionRepo(),
	}
	notifSvc := NewNotificacionService(repo, zap.NewNop(), "UTC")
	notifSvc.(*notificacionService).ahora = func() time.Time { return instanteFijo }
	svc := NewSaludService(repo, notifSvc, zap.NewNop())
	return svc, repo
}

func punteroInt(v int) *int           { return &v }
func punteroFloat(v float64) *float64 { return &v }

// ── RegistrarActividad ──

func TestRegistrarActividad_UsuarioInexistente(t *testing.T) {
	svc, _ := setupTestSaludService()

	req := &dto.RegistrarActividadRequest{Fecha: "2024-03-01", Pasos: punteroInt(5000), DuracionMinutos: punteroInt(30)}
	err := svc.RegistrarActividad(context.Background(), 999, req)
	if !errors.Is(err, ErrUsuarioNoEncontrado) {
		t.Errorf("se esperaba ErrUsuarioNoEncontrado, se obtuvo: %v", err)
	}
}

func TestRegistrarActividad_SobreescribeElDia(t *testing.T) {
	svc, repo := setupTestSaludService()
	crearUsuarioPrueba(repo, 1, model.RolUsuario)

	primera := &dto.RegistrarActividadRequest{Fecha: "2024-03-01", Pasos: punteroInt(3000), DuracionMinutos: punteroInt(20)}
	if err := svc.RegistrarActividad(context.Background(), 1, primera); err != nil {
		t.Fatalf("RegistrarActividad debería ser exitoso: %v", err)
	}

	segunda := &dto.RegistrarActividadRequest{Fecha: "2024-03-01", Pasos: punteroInt(9000), DuracionMinutos: punteroInt(60)}
	if err := svc.RegistrarActividad(context.Background(), 1, segunda); err != nil {
		t.Fatalf("RegistrarActividad debería ser exitoso: %v", err)
	}

	registros := repo.Actividad.(*mockActividadRepo).registros
	if len(registros) != 1 {
		t.Fatalf("el registro del día debería sobreescribirse, hay %d filas", len(registros))
	}
	if *registros[0].Pasos != 9000 {
		t.Errorf("se esperaban 9000 pasos tras la sobreescritura, hay %d", *registros[0].Pasos)
	}
}

// ── RegistrarSueno ──

func TestRegistrarSueno_SobreescribeElDia(t *testing.T) {
	svc, repo := setupTestSaludService()
	crearUsuarioPrueba(repo, 1, model.RolUsuario)

	for _, horas := range []float64{6, 8.5} {
		req := &dto.RegistrarSuenoRequest{Fecha: "2024-03-01", HorasDormidas: punteroFloat(horas)}
		if err := svc.RegistrarSueno(context.Background(), 1, req); err != nil {
			t.Fatalf("RegistrarSueno debería ser exitoso: %v", err)
		}
	}

	registros := repo.Sueno.(*mockSuenoRepo).registros
	if len(registros) != 1 {
		t.Fatalf("el registro del día debería sobreescribirse, hay %d filas", len(registros))
	}
	if *registros[0].HorasDormidas != 8.5 {
		t.Errorf("se esperaban 8.5h tras la sobreescritura, hay %v", *registros[0].HorasDormidas)
	}
}

// ── RegistrarComida ──

func TestRegistrarComida_AcumulaComidasDelDia(t *testing.T) {
	svc, repo := setupTestSaludService()
	crearUsuarioPrueba(repo, 1, model.RolUsuario)

	for _, comida := range []string{"Desayuno", "Almuerzo"} {
		req := &dto.RegistrarComidaRequest{Fecha: "2024-03-01", Comida: comida, Calorias: punteroFloat(600)}
		if err := svc.RegistrarComida(context.Background(), 1, req); err != nil {
			t.Fatalf("RegistrarComida debería ser exitoso: %v", err)
		}
	}

	registros := repo.Alimentacion.(*mockAlimentacionRepo).registros
	if len(registros) != 2 {
		t.Fatalf("cada comida debería ser una fila nueva, hay %d", len(registros))
	}
}

// ── Históricos ──

func TestListarActividad_FiltraPorRango(t *testing.T) {
	svc, repo := setupTestSaludService()
	crearUsuarioPrueba(repo, 1, model.RolUsuario)
	registrarActividadPrueba(repo, 1, "2024-02-28", 4000)
	registrarActividadPrueba(repo, 1, "2024-03-01", 8000)
	registrarActividadPrueba(repo, 1, "2024-03-05", 6000)

	result, err := svc.ListarActividad(context.Background(), 1, "2024-03-01", "2024-03-05")
	if err != nil {
		t.Fatalf("ListarActividad debería ser exitoso: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("se esperaban 2 registros en el rango, se obtuvieron %d", len(result))
	}
}

func TestListarSueno_SinRangoDevuelveTodo(t *testing.T) {
	svc, repo := setupTestSaludService()
	crearUsuarioPrueba(repo, 1, model.RolUsuario)
	registrarSuenoPrueba(repo, 1, "2024-02-28", 7)
	registrarSuenoPrueba(repo, 1, "2024-03-01", 8)

	result, err := svc.ListarSueno(context.Background(), 1, "", "")
	if err != nil {
		t.Fatalf("ListarSueno debería ser exitoso: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("sin rango se esperaban todos los registros, se obtuvieron %d", len(result))
	}
}
