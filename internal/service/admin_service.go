package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/EmmanuelQuintero/Control-Plus-7/internal/dto"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/model"
	"github.com/EmmanuelQuintero/Control-Plus-7/internal/repository"
	"github.com/EmmanuelQuintero/Control-Plus-7/pkg/mailer"
)

// ── Errores del panel de administración ──

var (
	ErrDifusionSinDestinatarios = errors.New("no se encontraron usuarios con los IDs proporcionados")
	ErrExportGeneracion         = errors.New("error generando el archivo Excel")
)

// AdminService operaciones del panel de administración
type AdminService interface {
	Estadisticas(ctx context.Context) (*dto.EstadisticasResponse, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
	// EnviarDifusion envía el mensaje por correo a los usuarios indicados y
	// crea una notificación general en aplicación para cada uno. Un fallo de
	// transporte en un destinatario no detiene el resto.
	EnviarDifusion(ctx context.Context, req *dto.DifusionCorreoRequest) (*dto.DifusionCorreoResponse, error)
	// ExportarUsuarios genera el padrón de usuarios en formato .xlsx
	ExportarUsuarios(ctx context.Context) (*bytes.Buffer, string, error)
}

type adminService struct {
	repo   *repository.Repository
	mailer mailer.Mailer
	logger *zap.Logger
}

// NewAdminService crea una instancia de AdminService
func NewAdminService(repo *repository.Repository, m mailer.Mailer, logger *zap.Logger) AdminService {
	return &adminService{repo: repo, mailer: m, logger: logger}
}

// ────────────────────── Estadisticas ──────────────────────

func (s *adminService) Estadisticas(ctx context.Context) (*dto.EstadisticasResponse, error) {
	total, err := s.repo.Usuario.Count(ctx)
	if err != nil {
		s.logger.Error("error contando usuarios", zap.Error(err))
		return nil, err
	}
	return &dto.EstadisticasResponse{TotalUsuarios: total}, nil
}

// ────────────────────── ListarUsuarios ──────────────────────

func (s *adminService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	usuarios, err := s.repo.Usuario.List(ctx)
	if err != nil {
		s.logger.Error("error listando usuarios", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UsuarioResponse, 0, len(usuarios))
	for i := range usuarios {
		result = append(result, *toUsuarioResponse(&usuarios[i]))
	}
	return result, nil
}

// ────────────────────── EnviarDifusion ──────────────────────

func (s *adminService) EnviarDifusion(ctx context.Context, req *dto.DifusionCorreoRequest) (*dto.DifusionCorreoResponse, error) {
	usuarios, err := s.repo.Usuario.List(ctx)
	if err != nil {
		s.logger.Error("error listando usuarios para difusión", zap.Error(err))
		return nil, err
	}

	objetivo := make(map[int64]bool, len(req.IDsUsuarios))
	for _, id := range req.IDsUsuarios {
		objetivo[id] = true
	}

	var destinatarios []model.Usuario
	for _, u := range usuarios {
		if objetivo[u.IDUsuario] {
			destinatarios = append(destinatarios, u)
		}
	}
	if len(destinatarios) == 0 {
		return nil, ErrDifusionSinDestinatarios
	}

	asunto := req.Asunto
	if asunto == "" {
		asunto = "📩 Notificación de Control+"
	}

	resp := &dto.DifusionCorreoResponse{}
	marca := timestampDifusion()

	for _, u := range destinatarios {
		if err := s.mailer.Enviar(u.Email, asunto, req.Mensaje); err != nil {
			s.logger.Warn("error enviando correo de difusión",
				zap.String("email", u.Email), zap.Error(err))
			resp.Fallidos = append(resp.Fallidos, u.Email)
			continue
		}
		resp.Enviados++

		// Notificación en aplicación; la clave lleva timestamp para que cada
		// difusión genere su propia fila
		k := fmt.Sprintf("admin_email_%d_%d", marca, u.IDUsuario)
		err := s.repo.Notificacion.Upsert(ctx, &model.Notificacion{
			IDUsuario: u.IDUsuario,
			Tipo:      model.TipoGeneral,
			Titulo:    asunto,
			Mensaje:   req.Mensaje,
			DedupeKey: &k,
		})
		if err != nil {
			s.logger.Warn("error creando notificación de difusión",
				zap.Int64("id_usuario", u.IDUsuario), zap.Error(err))
		}
	}

	return resp, nil
}

// ────────────────────── ExportarUsuarios ──────────────────────

func (s *adminService) ExportarUsuarios(ctx context.Context) (*bytes.Buffer, string, error) {
	usuarios, err := s.repo.Usuario.List(ctx)
	if err != nil {
		s.logger.Error("error listando usuarios para exportación", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const hoja = "Usuarios"
	f.SetSheetName(f.GetSheetName(0), hoja)

	encabezados := []string{"ID", "Nombre", "Apellido", "Email", "Edad", "Sexo", "Peso (kg)", "Altura (cm)", "Rol"}
	for i, h := range encabezados {
		celda, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(hoja, celda, h); err != nil {
			return nil, "", ErrExportGeneracion
		}
	}

	for fila, u := range usuarios {
		valores := []interface{}{
			u.IDUsuario, u.Nombre, u.Apellido, u.Email,
			valorOpcionalInt(u.Edad), valorOpcionalStr(u.Sexo),
			valorOpcionalFloat(u.Peso), valorOpcionalFloat(u.Altura),
			u.Rol,
		}
		for col, v := range valores {
			celda, _ := excelize.CoordinatesToCellName(col+1, fila+2)
			if err := f.SetCellValue(hoja, celda, v); err != nil {
				return nil, "", ErrExportGeneracion
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("error generando Excel de usuarios", zap.Error(err))
		return nil, "", ErrExportGeneracion
	}

	return buf, "usuarios_control_plus.xlsx", nil
}

// ── Métodos auxiliares internos ──

// timestampDifusion es variable para poder fijarlo en pruebas
var timestampDifusion = func() int64 {
	return time.Now().UnixMilli()
}

func valorOpcionalInt(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func valorOpcionalStr(v *string) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func valorOpcionalFloat(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
