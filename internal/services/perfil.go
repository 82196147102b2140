package services

import (
	"context"
	"io"

	"go.uber.org/zap"

	"gestion-system/internal/dto"
	"gestion-system/internal/entities"
	"gestion-system/internal/repositories"
	apperrors "gestion-system/pkg/errors"
	"gestion-system/pkg/filestorage"
	"gestion-system/pkg/utils"
)

type PerfilServiceInterface interface {
	UpdatePerfil(ctx context.Context, userID uint64, payload dto.UpdatePerfilDTO) (*entities.Usuario, error)
	ChangePassword(ctx context.Context, userID uint64, payload dto.ChangePasswordDTO) error
	UploadFirma(ctx context.Context, userID uint64, file io.Reader, filename string) (*entities.Usuario, error)
	UploadFoto(ctx context.Context, userID uint64, file io.Reader, filename string) (*entities.Usuario, error)
	DeleteFoto(ctx context.Context, userID uint64) error
}

type PerfilService struct {
	usuarioRepo repositories.UsuarioRepositoryInterface
	fileStorage filestorage.FileStorageInterface
	logger      *zap.Logger
}

func NewPerfilService(
	usuarioRepo repositories.UsuarioRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) PerfilServiceInterface {
	return &PerfilService{
		usuarioRepo: usuarioRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (s *PerfilService) UpdatePerfil(ctx context.Context, userID uint64, payload dto.UpdatePerfilDTO) (*entities.Usuario, error) {
	if err := s.usuarioRepo.UpdatePerfil(ctx, userID, payload.NombreCompleto, payload.Email); err != nil {
		return nil, err
	}
	return s.usuarioRepo.FindByID(ctx, userID)
}

func (s *PerfilService) ChangePassword(ctx context.Context, userID uint64, payload dto.ChangePasswordDTO) error {
	usuario, err := s.usuarioRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := utils.CheckPassword(usuario.Password, payload.PasswordActual); err != nil {
		return apperrors.NewBadRequestError("La contraseña actual no es correcta")
	}

	hashed, err := utils.HashPassword(payload.Password)
	if err != nil {
		return err
	}
	return s.usuarioRepo.UpdatePassword(ctx, userID, hashed)
}

func (s *PerfilService) UploadFirma(ctx context.Context, userID uint64, file io.Reader, filename string) (*entities.Usuario, error) {
	usuario, err := s.usuarioRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	path, err := s.fileStorage.Save(file, filename, "firmas")
	if err != nil {
		s.logger.Error("Error guardando firma", zap.Error(err), zap.Uint64("user_id", userID))
		return nil, err
	}

	if err := s.usuarioRepo.UpdateFirma(ctx, userID, &path); err != nil {
		return nil, err
	}

	// La firma anterior ya no se referencia.
	if usuario.FirmaDigital != nil {
		if err := s.fileStorage.Delete(*usuario.FirmaDigital); err != nil {
			s.logger.Warn("No se pudo borrar la firma anterior", zap.Error(err))
		}
	}

	return s.usuarioRepo.FindByID(ctx, userID)
}

func (s *PerfilService) UploadFoto(ctx context.Context, userID uint64, file io.Reader, filename string) (*entities.Usuario, error) {
	usuario, err := s.usuarioRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	path, err := s.fileStorage.Save(file, filename, "fotos")
	if err != nil {
		s.logger.Error("Error guardando foto de perfil", zap.Error(err), zap.Uint64("user_id", userID))
		return nil, err
	}

	if err := s.usuarioRepo.UpdateFoto(ctx, userID, &path); err != nil {
		return nil, err
	}

	if usuario.FotoPerfil != nil {
		if err := s.fileStorage.Delete(*usuario.FotoPerfil); err != nil {
			s.logger.Warn("No se pudo borrar la foto anterior", zap.Error(err))
		}
	}

	return s.usuarioRepo.FindByID(ctx, userID)
}

func (s *PerfilService) DeleteFoto(ctx context.Context, userID uint64) error {
	usuario, err := s.usuarioRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if usuario.FotoPerfil == nil {
		return apperrors.NewBadRequestError("El usuario no tiene foto de perfil")
	}

	if err := s.usuarioRepo.UpdateFoto(ctx, userID, nil); err != nil {
		return err
	}
	if err := s.fileStorage.Delete(*usuario.FotoPerfil); err != nil {
		s.logger.Warn("No se pudo borrar el archivo de la foto", zap.Error(err))
	}
	return nil
}
