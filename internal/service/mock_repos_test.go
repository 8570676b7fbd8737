package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/EmmanuelQuintero/Control-Plus-7/internal/model"
)

// ── Mock UsuarioRepository ──

type mockUsuarioRepo struct {
	usuarios  map[int64]*model.Usuario
	nextID    int64
	errList   error // fuerza el fallo de List
	errGetter error // fuerza el fallo de GetByID
}

func newMockUsuarioRepo() *mockUsuarioRepo {
	return &mockUsuarioRepo{usuarios: make(map[int64]*model.Usuario), nextID: 1}
}

func (m *mockUsuarioRepo) Create(_ context.Context, usuario *model.Usuario) error {
	if usuario.IDUsuario == 0 {
		usuario.IDUsuario = m.nextID
		m.nextID++
	} else if usuario.IDUsuario >= m.nextID {
		m.nextID = usuario.IDUsuario + 1
	}
	m.usuarios[usuario.IDUsuario] = usuario
	return nil
}

func (m *mockUsuarioRepo) GetByID(_ context.Context, id int64) (*model.Usuario, error) {
	if m.errGetter != nil {
		return nil, m.errGetter
	}
	if u, ok := m.usuarios[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUsuarioRepo) GetByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range m.usuarios {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUsuarioRepo) Update(_ context.Context, usuario *model.Usuario) error {
	m.usuarios[usuario.IDUsuario] = usuario
	return nil
}

func (m *mockUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	if m.errList != nil {
		return nil, m.errList
	}
	ids := make([]int64, 0, len(m.usuarios))
	for id := range m.usuarios {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]model.Usuario, 0, len(ids))
	for _, id := range ids {
		result = append(result, *m.usuarios[id])
	}
	return result, nil
}

func (m *mockUsuarioRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.usuarios)), nil
}

// ── Mock ActividadRepository ──

type mockActividadRepo struct {
	registros []model.ActividadFisica
	// errPorUsuario fuerza el fallo de ListarPorRango para un usuario concreto
	errPorUsuario map[int64]error
}

func newMockActividadRepo() *mockActividadRepo {
	return &mockActividadRepo{errPorUsuario: make(map[int64]error)}
}

func (m *mockActividadRepo) Upsert(_ context.Context, actividad *model.ActividadFisica) error {
	for i := range m.registros {
		if m.registros[i].IDUsuario == actividad.IDUsuario && m.registros[i].Fecha == actividad.Fecha {
			m.registros[i].Pasos = actividad.Pasos
			m.registros[i].DuracionMinutos = actividad.DuracionMinutos
			return nil
		}
	}
	actividad.IDActividad = int64(len(m.registros) + 1)
	m.registros = append(m.registros, *actividad)
	return nil
}

func (m *mockActividadRepo) ListarPorRango(_ context.Context, idUsuario int64, desde, hasta model.Fecha) ([]model.ActividadFisica, error) {
	if err := m.errPorUsuario[idUsuario]; err != nil {
		return nil, err
	}
	var result []model.ActividadFisica
	for _, r := range m.registros {
		if r.IDUsuario == idUsuario && dentroDeRango(r.Fecha, desde, hasta) {
			result = append(result, r)
		}
	}
	return result, nil
}

// ── Mock SuenoRepository ──

type mockSuenoRepo struct {
	registros []model.Sueno
}

func newMockSuenoRepo() *mockSuenoRepo {
	return &mockSuenoRepo{}
}

func (m *mockSuenoRepo) Upsert(_ context.Context, sueno *model.Sueno) error {
	for i := range m.registros {
		if m.registros[i].IDUsuario == sueno.IDUsuario && m.registros[i].Fecha == sueno.Fecha {
			m.registros[i].HorasDormidas = sueno.HorasDormidas
			return nil
		}
	}
	sueno.IDSueno = int64(len(m.registros) + 1)
	m.registros = append(m.registros, *sueno)
	return nil
}

func (m *mockSuenoRepo) ListarPorRango(_ context.Context, idUsuario int64, desde, hasta model.Fecha) ([]model.Sueno, error) {
	var result []model.Sueno
	for _, r := range m.registros {
		if r.IDUsuario == idUsuario && dentroDeRango(r.Fecha, desde, hasta) {
			result = append(result, r)
		}
	}
	return result, nil
}

// ── Mock AlimentacionRepository ──

type mockAlimentacionRepo struct {
	registros []model.Alimentacion
}

func newMockAlimentacionRepo() *mockAlimentacionRepo {
	return &mockAlimentacionRepo{}
}

func (m *mockAlimentacionRepo) Create(_ context.Context, comida *model.Alimentacion) error {
	comida.IDAlimento = int64(len(m.registros) + 1)
	m.registros = append(m.registros, *comida)
	return nil
}

func (m *mockAlimentacionRepo) ListarPorRango(_ context.Context, idUsuario int64, desde, hasta model.Fecha) ([]model.Alimentacion, error) {
	var result []model.Alimentacion
	for _, r := range m.registros {
		if r.IDUsuario == idUsuario && dentroDeRango(r.Fecha, desde, hasta) {
			result = append(result, r)
		}
	}
	return result, nil
}

// ── Mock NotificacionRepository ──

// mockNotificacionRepo replica en memoria el contrato del upsert real:
// a lo sumo una fila por (id_usuario, dedupe_key); el conflicto sobreescribe
// título, mensaje y tipo, fuerza leida=false y reinicia fecha_creacion.
type mockNotificacionRepo struct {
	notificaciones []model.Notificacion
	nextID         int64
	reloj          time.Time // avanza un segundo por escritura para ordenar
	errUpsert      error
	errMarcar      error
}

func newMockNotificacionRepo() *mockNotificacionRepo {
	return &mockNotificacionRepo{
		nextID: 1,
		reloj:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *mockNotificacionRepo) tic() time.Time {
	m.reloj = m.reloj.Add(time.Second)
	return m.reloj
}

func (m *mockNotificacionRepo) Upsert(_ context.Context, notificacion *model.Notificacion) error {
	if m.errUpsert != nil {
		return m.errUpsert
	}

	if notificacion.DedupeKey != nil {
		for i := range m.notificaciones {
			existente := &m.notificaciones[i]
			if existente.IDUsuario == notificacion.IDUsuario &&
				existente.DedupeKey != nil && *existente.DedupeKey == *notificacion.DedupeKey {
				existente.Titulo = notificacion.Titulo
				existente.Mensaje = notificacion.Mensaje
				existente.Tipo = notificacion.Tipo
				existente.Leida = false
				existente.FechaCreacion = m.tic()
				return nil
			}
		}
	}

	notificacion.IDNotificacion = m.nextID
	m.nextID++
	notificacion.Leida = false
	notificacion.FechaCreacion = m.tic()
	m.notificaciones = append(m.notificaciones, *notificacion)
	return nil
}

func (m *mockNotificacionRepo) MarcarLeidaPorClave(_ context.Context, idUsuario int64, clave string) (int64, error) {
	if m.errMarcar != nil {
		return 0, m.errMarcar
	}
	var afectadas int64
	for i := range m.notificaciones {
		n := &m.notificaciones[i]
		if n.IDUsuario == idUsuario && n.DedupeKey != nil && *n.DedupeKey == clave && !n.Leida {
			n.Leida = true
			afectadas++
		}
	}
	return afectadas, nil
}

func (m *mockNotificacionRepo) MarcarLeidas(_ context.Context, idUsuario int64, ids []int64) (int64, error) {
	buscadas := make(map[int64]bool, len(ids))
	for _, id := range ids {
		buscadas[id] = true
	}
	var afectadas int64
	for i := range m.notificaciones {
		n := &m.notificaciones[i]
		if n.IDUsuario == idUsuario && buscadas[n.IDNotificacion] && !n.Leida {
			n.Leida = true
			afectadas++
		}
	}
	return afectadas, nil
}

func (m *mockNotificacionRepo) Listar(_ context.Context, idUsuario int64, desde *time.Time) ([]model.Notificacion, error) {
	var result []model.Notificacion
	for _, n := range m.notificaciones {
		if n.IDUsuario != idUsuario {
			continue
		}
		if desde != nil && !n.FechaCreacion.After(*desde) {
			continue
		}
		result = append(result, n)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].FechaCreacion.After(result[j].FechaCreacion)
	})
	if len(result) > 50 {
		result = result[:50]
	}
	return result, nil
}

// porClave busca la notificación viva de un usuario por su dedupe_key
func (m *mockNotificacionRepo) porClave(idUsuario int64, clave string) *model.Notificacion {
	for i := range m.notificaciones {
		n := &m.notificaciones[i]
		if n.IDUsuario == idUsuario && n.DedupeKey != nil && *n.DedupeKey == clave {
			return n
		}
	}
	return nil
}

// ── Mock Mailer ──

type mockMailer struct {
	enviados []string // destinatarios en orden de envío
	// fallarPara simula el fallo de transporte para ciertos destinatarios
	fallarPara map[string]bool
}

func newMockMailer() *mockMailer {
	return &mockMailer{fallarPara: make(map[string]bool)}
}

func (m *mockMailer) Enviar(destinatario, _, _ string) error {
	if m.fallarPara[destinatario] {
		return errors.New("fallo SMTP simulado")
	}
	m.enviados = append(m.enviados, destinatario)
	return nil
}

// ── Auxiliares ──

func dentroDeRango(fecha, desde, hasta model.Fecha) bool {
	if desde != "" && string(fecha) < string(desde) {
		return false
	}
	if hasta != "" && string(fecha) > string(hasta) {
		return false
	}
	return true
}
