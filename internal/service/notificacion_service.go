package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EmmanuelQuintero/Control-Plus-7/internal/dto"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/model"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/repository"
)

// ── Errores del módulo de notificaciones ──

var (
	ErrUsuarioNoEncontrado = errors.New("usuario no encontrado")
	ErrFechaInvalida       = errors.New("fecha inválida: se espera YYYY-MM-DD")
)

// ── Metas diarias ──
// Valores fijos asumidos por las reglas; no son configurables por usuario.

const (
	metaHorasSueno   = 8.0  // horas
	metaPasos        = 8000 // pasos
	factorPasosBajos = 0.75 // por debajo de 75% de la meta se considera actividad baja
	techoCalorias    = 2500.0
	pisoCalorias     = 1200.0
)

// ContextoEvaluacion valores recién escritos por el endpoint que dispara la
// evaluación. Evita releer datos que el llamador acaba de escribir y cubre el
// caso en que la escritura aún no es visible en una lectura posterior.
type ContextoEvaluacion struct {
	HorasDormidas *float64
	Pasos         *int
	TotalCalorias *float64
}

// NotificacionService motor de reglas y acceso a notificaciones
type NotificacionService interface {
	// EvaluarDia evalúa las reglas de sueño, actividad y alimentación del
	// usuario para un día exacto, creando o sobreescribiendo notificaciones
	// y retirando avisos obsoletos del mismo día.
	EvaluarDia(ctx context.Context, idUsuario int64, fecha model.Fecha, contexto *ContextoEvaluacion) error
	// EvaluarDiaEnSegundoPlano lanza EvaluarDia desacoplado de la respuesta
	// HTTP; los errores solo se registran en el log.
	EvaluarDiaEnSegundoPlano(idUsuario int64, fecha model.Fecha, contexto *ContextoEvaluacion)
	// EjecutarBarrido evalúa "ayer" para todos los usuarios. El fallo de un
	// usuario no aborta el lote.
	EjecutarBarrido(ctx context.Context) error

	Listar(ctx context.Context, idUsuario int64, desdeISO string) ([]dto.NotificacionResponse, error)
	MarcarLeidas(ctx context.Context, idUsuario int64, ids []int64) (int64, error)
	// AnunciarNuevoUsuario crea el aviso administrativo de alta de usuario
	// para todos los administradores. Mejor esfuerzo.
	AnunciarNuevoUsuario(ctx context.Context, nuevo *model.Usuario)
}

type notificacionService struct {
	repo   *repository.Repository
	logger *zap.Logger
	zona   *time.Location
	ahora  func() time.Time // inyectable en pruebas
}

// NewNotificacionService crea una instancia de NotificacionService.
// timezone define la zona de referencia para las etiquetas "Hoy"/"Ayer".
func NewNotificacionService(repo *repository.Repository, logger *zap.Logger, timezone string) NotificacionService {
	zona, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Warn("zona horaria inválida, usando UTC", zap.String("timezone", timezone), zap.Error(err))
		zona = time.UTC
	}
	return &notificacionService{
		repo:   repo,
		logger: logger,
		zona:   zona,
		ahora:  time.Now,
	}
}

// ────────────────────── EvaluarDia ──────────────────────

func (s *notificacionService) EvaluarDia(ctx context.Context, idUsuario int64, fecha model.Fecha, contexto *ContextoEvaluacion) error {
	usuario, err := s.repo.Usuario.GetByID(ctx, idUsuario)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUsuarioNoEncontrado
		}
		s.logger.Error("error consultando usuario", zap.Int64("id_usuario", idUsuario), zap.Error(err))
		return err
	}

	// Los administradores no reciben notificaciones de salud personal
	if usuario.EsAdmin() {
		return nil
	}

	if !fecha.Valida() {
		return ErrFechaInvalida
	}

	// Lecturas del día exacto [fecha, fecha]; independientes entre sí
	actividades, err := s.repo.Actividad.ListarPorRango(ctx, idUsuario, fecha, fecha)
	if err != nil {
		s.logger.Error("error consultando actividad física", zap.Int64("id_usuario", idUsuario), zap.Error(err))
		return err
	}
	suenos, err := s.repo.Sueno.ListarPorRango(ctx, idUsuario, fecha, fecha)
	if err != nil {
		s.logger.Error("error consultando sueño", zap.Int64("id_usuario", idUsuario), zap.Error(err))
		return err
	}
	comidas, err := s.repo.Alimentacion.ListarPorRango(ctx, idUsuario, fecha, fecha)
	if err != nil {
		s.logger.Error("error consultando alimentación", zap.Int64("id_usuario", idUsuario), zap.Error(err))
		return err
	}

	etiqueta := s.etiquetaDia(fecha)

	// Grupos de reglas en orden fijo: sueño, actividad, alimentación
	if err := s.evaluarSueno(ctx, idUsuario, fecha, etiqueta, suenos, contexto); err != nil {
		return err
	}
	if err := s.evaluarActividad(ctx, idUsuario, fecha, etiqueta, actividades, contexto); err != nil {
		return err
	}
	if err := s.evaluarAlimentacion(ctx, idUsuario, fecha, etiqueta, comidas, contexto); err != nil {
		return err
	}

	return nil
}

// ── Grupo sueño ──

func (s *notificacionService) evaluarSueno(ctx context.Context, idUsuario int64, fecha model.Fecha, etiqueta string, suenos []model.Sueno, contexto *ContextoEvaluacion) error {
	sinContexto := contexto == nil || contexto.HorasDormidas == nil

	if len(suenos) == 0 && sinContexto {
		return s.crear(ctx, idUsuario, model.TipoSueno,
			fmt.Sprintf("Sin registro de sueño (%s)", etiqueta),
			fmt.Sprintf("%s no registraste tus horas de sueño. Llevar un registro ayuda a mejorar tu descanso.", etiqueta),
			clave("sleep_missing", fecha))
	}

	var horas float64
	if !sinContexto {
		horas = *contexto.HorasDormidas
	} else if suenos[0].HorasDormidas != nil {
		horas = *suenos[0].HorasDormidas
	}

	switch {
	case horas >= metaHorasSueno:
		err := s.crear(ctx, idUsuario, model.TipoSueno,
			"¡Buen descanso! 🎉",
			fmt.Sprintf("%s dormiste %sh y alcanzaste tu meta de %sh. ¡Sigue así!", etiqueta, formatoHoras(horas), formatoHoras(metaHorasSueno)),
			clave("sleep_good", fecha))
		if err != nil {
			return err
		}
		// Ocultar posibles avisos negativos del mismo día
		s.retractar(ctx, idUsuario, clave("sleep_low", fecha))
		s.retractar(ctx, idUsuario, clave("sleep_missing", fecha))

	case horas < math.Min(7, metaHorasSueno):
		err := s.crear(ctx, idUsuario, model.TipoSueno,
			"Dormiste menos de lo recomendado",
			fmt.Sprintf("%s dormiste %sh. Intenta acercarte a tu meta de %sh para un mejor rendimiento.", etiqueta, formatoHoras(horas), formatoHoras(metaHorasSueno)),
			clave("sleep_low", fecha))
		if err != nil {
			return err
		}
		// Si existía "sin registro" para este día, marcarlo como leído
		s.retractar(ctx, idUsuario, clave("sleep_missing", fecha))
	}
	// Entre min(7, meta) y la meta: franja de silencio, sin notificación

	return nil
}

// ── Grupo actividad ──

func (s *notificacionService) evaluarActividad(ctx context.Context, idUsuario int64, fecha model.Fecha, etiqueta string, actividades []model.ActividadFisica, contexto *ContextoEvaluacion) error {
	sinContexto := contexto == nil || contexto.Pasos == nil

	if len(actividades) == 0 && sinContexto {
		return s.crear(ctx, idUsuario, model.TipoActividad,
			fmt.Sprintf("Sin actividad física (%s)", etiqueta),
			fmt.Sprintf("No registraste pasos ni minutos de actividad %s. Una caminata corta puede marcar la diferencia.", etiqueta),
			clave("activity_missing", fecha))
	}

	var pasos int
	if !sinContexto {
		pasos = *contexto.Pasos
	} else if actividades[0].Pasos != nil {
		pasos = *actividades[0].Pasos
	}

	switch {
	case pasos >= metaPasos:
		err := s.crear(ctx, idUsuario, model.TipoActividad,
			"¡Meta de pasos alcanzada! 🎉",
			fmt.Sprintf("%s registraste %d pasos y alcanzaste tu meta de %d. ¡Excelente!", etiqueta, pasos, metaPasos),
			clave("activity_good", fecha))
		if err != nil {
			return err
		}
		s.retractar(ctx, idUsuario, clave("activity_low", fecha))
		s.retractar(ctx, idUsuario, clave("activity_missing", fecha))

	case float64(pasos) < metaPasos*factorPasosBajos:
		err := s.crear(ctx, idUsuario, model.TipoActividad,
			"Actividad baja",
			fmt.Sprintf("%s registraste %d pasos. Tu meta sugerida es %d. ¡Intenta moverte un poco más hoy!", etiqueta, pasos, metaPasos),
			clave("activity_low", fecha))
		if err != nil {
			return err
		}
		s.retractar(ctx, idUsuario, clave("activity_missing", fecha))
	}
	// Entre 75% de la meta y la meta: franja de silencio

	return nil
}

// ── Grupo alimentación ──

func (s *notificacionService) evaluarAlimentacion(ctx context.Context, idUsuario int64, fecha model.Fecha, etiqueta string, comidas []model.Alimentacion, contexto *ContextoEvaluacion) error {
	// Sin comidas registradas no se emite nada: "no registró" se distingue
	// de "registró dentro del rango"
	if len(comidas) == 0 {
		return nil
	}

	var total float64
	if contexto != nil && contexto.TotalCalorias != nil {
		total = *contexto.TotalCalorias
	} else {
		for _, c := range comidas {
			if c.Calorias != nil {
				total += *c.Calorias
			}
		}
	}

	switch {
	case total > techoCalorias:
		return s.crear(ctx, idUsuario, model.TipoAlimentacion,
			"Calorías altas",
			fmt.Sprintf("%s tu ingesta fue de ~%d kcal. Considera equilibrar porciones y snacks.", etiqueta, int(math.Round(total))),
			clave("food_highcal", fecha))

	case total >= pisoCalorias:
		err := s.crear(ctx, idUsuario, model.TipoAlimentacion,
			"Buen equilibrio calórico ✅",
			fmt.Sprintf("%s tu ingesta fue de ~%d kcal, dentro del objetivo (≤ %d kcal).", etiqueta, int(math.Round(total)), int(techoCalorias)),
			clave("food_good", fecha))
		if err != nil {
			return err
		}
		s.retractar(ctx, idUsuario, clave("food_highcal", fecha))
	}
	// Por debajo del piso no se emite nada

	return nil
}

// ────────────────────── EvaluarDiaEnSegundoPlano ──────────────────────

func (s *notificacionService) EvaluarDiaEnSegundoPlano(idUsuario int64, fecha model.Fecha, contexto *ContextoEvaluacion) {
	go func() {
		// Contexto propio: la petición que disparó la evaluación ya respondió
		if err := s.EvaluarDia(context.Background(), idUsuario, fecha, contexto); err != nil {
			s.logger.Error("evaluación de notificaciones en segundo plano falló",
				zap.Int64("id_usuario", idUsuario),
				zap.String("fecha", string(fecha)),
				zap.Error(err))
		}
	}()
}

// ────────────────────── EjecutarBarrido ──────────────────────

func (s *notificacionService) EjecutarBarrido(ctx context.Context) error {
	usuarios, err := s.repo.Usuario.List(ctx)
	if err != nil {
		s.logger.Error("error listando usuarios para el barrido", zap.Error(err))
		return err
	}

	ayer := model.Fecha(s.ahora().In(s.zona).AddDate(0, 0, -1).Format("2006-01-02"))

	for _, u := range usuarios {
		if err := s.EvaluarDia(ctx, u.IDUsuario, ayer, nil); err != nil {
			// El fallo de un usuario no aborta el barrido
			s.logger.Error("error evaluando notificaciones de usuario",
				zap.Int64("id_usuario", u.IDUsuario),
				zap.Error(err))
		}
	}

	return nil
}

// ────────────────────── Listar ──────────────────────

func (s *notificacionService) Listar(ctx context.Context, idUsuario int64, desdeISO string) ([]dto.NotificacionResponse, error) {
	usuario, err := s.repo.Usuario.GetByID(ctx, idUsuario)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNoEncontrado
		}
		s.logger.Error("error consultando usuario", zap.Int64("id_usuario", idUsuario), zap.Error(err))
		return nil, err
	}

	var desde *time.Time
	if desdeISO != "" {
		t, err := time.Parse(time.RFC3339, desdeISO)
		if err != nil {
			// Formato no reconocido: se ignora el filtro, igual que el tope completo
			s.logger.Warn("parámetro desde con formato inválido, ignorado", zap.String("desde", desdeISO))
		} else {
			desde = &t
		}
	}

	notificaciones, err := s.repo.Notificacion.Listar(ctx, idUsuario, desde)
	if err != nil {
		s.logger.Error("error listando notificaciones", zap.Int64("id_usuario", idUsuario), zap.Error(err))
		return nil, err
	}

	result := make([]dto.NotificacionResponse, 0, len(notificaciones))
	for _, n := range notificaciones {
		// Los administradores solo ven avisos generales; las notificaciones
		// de salud no aplican a su rol
		if usuario.EsAdmin() && n.Tipo != model.TipoGeneral {
			continue
		}
		result = append(result, dto.NotificacionResponse{
			ID:            n.IDNotificacion,
			IDUsuario:     n.IDUsuario,
			Tipo:          n.Tipo,
			Titulo:        n.Titulo,
			Mensaje:       n.Mensaje,
			FechaCreacion: n.FechaCreacion.UTC().Format(time.RFC3339),
			Leida:         n.Leida,
		})
	}

	return result, nil
}

// ────────────────────── MarcarLeidas ──────────────────────

func (s *notificacionService) MarcarLeidas(ctx context.Context, idUsuario int64, ids []int64) (int64, error) {
	cantidad, err := s.repo.Notificacion.MarcarLeidas(ctx, idUsuario, ids)
	if err != nil {
		s.logger.Error("error marcando notificaciones como leídas", zap.Int64("id_usuario", idUsuario), zap.Error(err))
		return 0, err
	}
	return cantidad, nil
}

// ────────────────────── AnunciarNuevoUsuario ──────────────────────

func (s *notificacionService) AnunciarNuevoUsuario(ctx context.Context, nuevo *model.Usuario) {
	usuarios, err := s.repo.Usuario.List(ctx)
	if err != nil {
		s.logger.Warn("no se pudo crear el aviso administrativo de alta de usuario", zap.Error(err))
		return
	}

	claveAviso := fmt.Sprintf("admin_newuser_%d", nuevo.IDUsuario)
	mensaje := fmt.Sprintf("Se ha registrado %s %s (%s).", nuevo.Nombre, nuevo.Apellido, nuevo.Email)

	for _, u := range usuarios {
		if !u.EsAdmin() {
			continue
		}
		k := claveAviso
		err := s.repo.Notificacion.Upsert(ctx, &model.Notificacion{
			IDUsuario: u.IDUsuario,
			Tipo:      model.TipoGeneral,
			Titulo:    "Nuevo usuario registrado",
			Mensaje:   mensaje,
			DedupeKey: &k,
		})
		if err != nil {
			s.logger.Warn("no se pudo crear el aviso administrativo de alta de usuario",
				zap.Int64("id_admin", u.IDUsuario), zap.Error(err))
		}
	}
}

// ── Métodos auxiliares internos ──

// crear pasa la intención por el motor de upsert; un fallo aquí sí se propaga
func (s *notificacionService) crear(ctx context.Context, idUsuario int64, tipo, titulo, mensaje, dedupeKey string) error {
	k := dedupeKey
	err := s.repo.Notificacion.Upsert(ctx, &model.Notificacion{
		IDUsuario: idUsuario,
		Tipo:      tipo,
		Titulo:    titulo,
		Mensaje:   mensaje,
		DedupeKey: &k,
	})
	if err != nil {
		s.logger.Error("error creando notificación",
			zap.Int64("id_usuario", idUsuario),
			zap.String("dedupe_key", dedupeKey),
			zap.Error(err))
		return err
	}
	return nil
}

// retractar marca como leído un aviso obsoleto del mismo día. Mejor esfuerzo:
// el aviso puede no existir y un fallo no debe abortar la evaluación en curso.
func (s *notificacionService) retractar(ctx context.Context, idUsuario int64, dedupeKey string) {
	if _, err := s.repo.Notificacion.MarcarLeidaPorClave(ctx, idUsuario, dedupeKey); err != nil {
		s.logger.Warn("no se pudo retirar notificación obsoleta",
			zap.Int64("id_usuario", idUsuario),
			zap.String("dedupe_key", dedupeKey),
			zap.Error(err))
	}
}

// etiquetaDia calcula la etiqueta amigable del día: Hoy / Ayer / dd/mm/aaaa
func (s *notificacionService) etiquetaDia(fecha model.Fecha) string {
	hoy := s.ahora().In(s.zona)
	switch string(fecha) {
	case hoy.Format("2006-01-02"):
		return "Hoy"
	case hoy.AddDate(0, 0, -1).Format("2006-01-02"):
		return "Ayer"
	}

	t, err := time.ParseInLocation("2006-01-02", string(fecha), s.zona)
	if err != nil {
		return string(fecha)
	}
	return t.Format("02/01/2006")
}

// clave arma la clave de deduplicación "regla_fecha"
func clave(regla string, fecha model.Fecha) string {
	return regla + "_" + string(fecha)
}

// formatoHoras imprime horas sin ceros sobrantes (7.5 → "7.5", 8 → "8")
func formatoHoras(horas float64) string {
	return strconv.FormatFloat(horas, 'f', -1, 64)
}
