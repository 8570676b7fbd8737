//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/EmmanuelQuintero/Control-Plus-7/internal/model"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Preparación
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=postgres password=postgres dbname=control_plus_test sslmode=disable TimeZone=America/Bogota"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "no se pudo conectar a la base de pruebas: %v\n", err)
		os.Exit(1)
	}

	err = testDB.AutoMigrate(
		&model.Usuario{},
		&model.ActividadFisica{},
		&model.Sueno{},
		&model.Alimentacion{},
		&model.Notificacion{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate falló: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// setupTestUsuario crea un usuario de prueba y devuelve su limpieza
func setupTestUsuario(t *testing.T) (*model.Usuario, func()) {
	t.Helper()
	ctx := context.Background()

	usuario := &model.Usuario{
		Nombre:     "Prueba",
		Apellido:   "Integración",
		Email:      fmt.Sprintf("prueba%d@test.com", time.Now().UnixNano()),
		Contrasena: "$2a$10$placeholder",
		Rol:        model.RolUsuario,
	}
	if err := testDB.WithContext(ctx).Create(usuario).Error; err != nil {
		t.Fatalf("error creando usuario de prueba: %v", err)
	}

	cleanup := func() {
		testDB.Where("id_usuario = ?", usuario.IDUsuario).Delete(&model.Notificacion{})
		testDB.Where("id_usuario = ?", usuario.IDUsuario).Delete(&model.ActividadFisica{})
		testDB.Where("id_usuario = ?", usuario.IDUsuario).Delete(&model.Sueno{})
		testDB.Where("id_usuario = ?", usuario.IDUsuario).Delete(&model.Alimentacion{})
		testDB.Where("id_usuario = ?", usuario.IDUsuario).Delete(&model.Usuario{})
	}
	return usuario, cleanup
}

// ═══════════════════════════════════════════════════════════
// NotificacionRepository
// ═══════════════════════════════════════════════════════════

func TestNotificacionRepo_UpsertDeduplicaPorClave(t *testing.T) {
	usuario, cleanup := setupTestUsuario(t)
	defer cleanup()

	repo := repository.NewNotificacionRepo(testDB)
	ctx := context.Background()
	k := "sleep_missing_2024-03-01"

	primera := &model.Notificacion{
		IDUsuario: usuario.IDUsuario,
		Tipo:      model.TipoSueno,
		Titulo:    "Sin registro de sueño (Ayer)",
		Mensaje:   "mensaje original",
		DedupeKey: &k,
	}
	if err := repo.Upsert(ctx, primera); err != nil {
		t.Fatalf("el primer Upsert debería ser exitoso: %v", err)
	}

	// Marcar como leída para comprobar que el conflicto la reactiva
	if _, err := repo.MarcarLeidas(ctx, usuario.IDUsuario, []int64{primera.IDNotificacion}); err != nil {
		t.Fatalf("MarcarLeidas debería ser exitoso: %v", err)
	}

	segunda := &model.Notificacion{
		IDUsuario: usuario.IDUsuario,
		Tipo:      model.TipoSueno,
		Titulo:    "Sin registro de sueño (Ayer)",
		Mensaje:   "mensaje actualizado",
		DedupeKey: &k,
	}
	if err := repo.Upsert(ctx, segunda); err != nil {
		t.Fatalf("el Upsert en conflicto debería ser exitoso: %v", err)
	}

	var filas []model.Notificacion
	if err := testDB.Where("id_usuario = ? AND dedupe_key = ?", usuario.IDUsuario, k).Find(&filas).Error; err != nil {
		t.Fatalf("error consultando notificaciones: %v", err)
	}
	if len(filas) != 1 {
		t.Fatalf("(id_usuario, dedupe_key) debería tener una sola fila viva, hay %d", len(filas))
	}
	if filas[0].Mensaje != "mensaje actualizado" {
		t.Errorf("el conflicto debería sobreescribir el mensaje, quedó %q", filas[0].Mensaje)
	}
	if filas[0].Leida {
		t.Error("el conflicto debería reiniciar leida=false")
	}
}

func TestNotificacionRepo_SinClaveSiempreInserta(t *testing.T) {
	usuario, cleanup := setupTestUsuario(t)
	defer cleanup()

	repo := repository.NewNotificacionRepo(testDB)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		n := &model.Notificacion{
			IDUsuario: usuario.IDUsuario,
			Tipo:      model.TipoGeneral,
			Titulo:    "Aviso general",
			Mensaje:   "sin clave de deduplicación",
		}
		if err := repo.Upsert(ctx, n); err != nil {
			t.Fatalf("Upsert sin clave debería ser exitoso: %v", err)
		}
	}

	var total int64
	testDB.Model(&model.Notificacion{}).Where("id_usuario = ?", usuario.IDUsuario).Count(&total)
	if total != 2 {
		t.Errorf("sin dedupe_key cada Upsert debería insertar, hay %d filas", total)
	}
}

func TestNotificacionRepo_MarcarLeidaPorClaveInexistente(t *testing.T) {
	usuario, cleanup := setupTestUsuario(t)
	defer cleanup()

	repo := repository.NewNotificacionRepo(testDB)

	afectadas, err := repo.MarcarLeidaPorClave(context.Background(), usuario.IDUsuario, "clave_inexistente")
	if err != nil {
		t.Fatalf("una clave inexistente no debería producir error: %v", err)
	}
	if afectadas != 0 {
		t.Errorf("se esperaban 0 filas afectadas, se obtuvieron %d", afectadas)
	}
}

// ═══════════════════════════════════════════════════════════
// Registros diarios
// ═══════════════════════════════════════════════════════════

func TestActividadRepo_UpsertSobreescribeElDia(t *testing.T) {
	usuario, cleanup := setupTestUsuario(t)
	defer cleanup()

	repo := repository.NewActividadRepo(testDB)
	ctx := context.Background()

	for _, pasos := range []int{3000, 9000} {
		p := pasos
		minutos := 30
		err := repo.Upsert(ctx, &model.ActividadFisica{
			IDUsuario:       usuario.IDUsuario,
			Fecha:           "2024-03-01",
			Pasos:           &p,
			DuracionMinutos: &minutos,
		})
		if err != nil {
			t.Fatalf("Upsert debería ser exitoso: %v", err)
		}
	}

	registros, err := repo.ListarPorRango(ctx, usuario.IDUsuario, "2024-03-01", "2024-03-01")
	if err != nil {
		t.Fatalf("ListarPorRango debería ser exitoso: %v", err)
	}
	if len(registros) != 1 {
		t.Fatalf("el día debería tener una sola fila, hay %d", len(registros))
	}
	if registros[0].Pasos == nil || *registros[0].Pasos != 9000 {
		t.Errorf("la segunda escritura debería sobreescribir los pasos, hay %v", registros[0].Pasos)
	}
}
