package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"strings"
	"time"

	"homestead/internal/app/ports"
	"homestead/internal/domain/homestead"
)

const (
	CredentialStatusActive = "active"
)

var (
	ErrInvalidRequest     = errors.New("invalid auth request")
	ErrInvalidCredentials = errors.New("invalid farm credentials")
)

type RegisterRequest struct{}

type RegisterResponse struct {
	FarmID   string `json:"farm_id"`
	FarmKey  string `json:"farm_key"`
	IssuedAt string `json:"issued_at"`
}

type VerifyRequest struct {
	FarmID  string
	FarmKey string
}

type RegisterUseCase struct {
	Credentials ports.FarmCredentialRepository
	StateRepo   ports.FarmStateRepository
	TxManager   ports.TxManager
	Content     homestead.Options
	Now         func() time.Time
}

type VerifyUseCase struct {
	Credentials ports.FarmCredentialRepository
	Cache       *CredentialCache
}

func (u RegisterUseCase) Execute(ctx context.Context, _ RegisterRequest) (RegisterResponse, error) {
	if u.Credentials == nil || u.StateRepo == nil || u.TxManager == nil {
		return RegisterResponse{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().UTC()

	for i := 0; i < 3; i++ {
		farmID, err := newFarmID(now)
		if err != nil {
			return RegisterResponse{}, err
		}
		farmKey, err := randomToken(32)
		if err != nil {
			return RegisterResponse{}, err
		}
		salt, err := randomBytes(16)
		if err != nil {
			return RegisterResponse{}, err
		}
		seed, err := randomSeed()
		if err != nil {
			return RegisterResponse{}, err
		}
		hash := credentialHash(salt, farmKey)

		err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
			if err := u.Credentials.Create(txCtx, ports.FarmCredentialRecord{
				FarmID:    farmID,
				KeySalt:   salt,
				KeyHash:   hash,
				Status:    CredentialStatusActive,
				CreatedAt: now,
			}); err != nil {
				return err
			}
			opts := u.Content
			opts.Seed = seed
			game, err := homestead.New(opts)
			if err != nil {
				return err
			}
			defer game.Close()
			return u.StateRepo.SaveWithVersion(txCtx, ports.FarmState{
				FarmID:    farmID,
				Snapshot:  game.Snapshot(),
				Version:   1,
				UpdatedAt: now,
			}, 0)
		})
		if errors.Is(err, ports.ErrConflict) {
			continue
		}
		if err != nil {
			return RegisterResponse{}, err
		}
		return RegisterResponse{
			FarmID:   farmID,
			FarmKey:  farmKey,
			IssuedAt: now.Format(time.RFC3339),
		}, nil
	}

	return RegisterResponse{}, ports.ErrConflict
}

func (u VerifyUseCase) Execute(ctx context.Context, req VerifyRequest) error {
	req.FarmID = strings.TrimSpace(req.FarmID)
	req.FarmKey = strings.TrimSpace(req.FarmKey)
	if req.FarmID == "" || req.FarmKey == "" || u.Credentials == nil {
		return ErrInvalidRequest
	}

	cred, cached := u.Cache.Get(req.FarmID)
	if !cached {
		var err error
		if cred, err = u.load(ctx, req.FarmID); err != nil {
			return err
		}
	}
	if accepts(cred, req.FarmKey) {
		return nil
	}
	if !cached {
		return ErrInvalidCredentials
	}
	// the cached record may predate a key rotation; check the store once
	u.Cache.Invalidate(req.FarmID)
	cred, err := u.load(ctx, req.FarmID)
	if err != nil {
		return err
	}
	if !accepts(cred, req.FarmKey) {
		return ErrInvalidCredentials
	}
	return nil
}

func (u VerifyUseCase) load(ctx context.Context, farmID string) (ports.FarmCredentialRecord, error) {
	cred, err := u.Credentials.GetByFarmID(ctx, farmID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return ports.FarmCredentialRecord{}, ErrInvalidCredentials
		}
		return ports.FarmCredentialRecord{}, err
	}
	u.Cache.Set(cred)
	return cred, nil
}

func accepts(cred ports.FarmCredentialRecord, key string) bool {
	if cred.Status != CredentialStatusActive {
		return false
	}
	return subtle.ConstantTimeCompare(credentialHash(cred.KeySalt, key), cred.KeyHash) == 1
}

func credentialHash(salt []byte, key string) []byte {
	b := make([]byte, 0, len(salt)+len(key))
	b = append(b, salt...)
	b = append(b, key...)
	sum := sha256.Sum256(b)
	return sum[:]
}

func newFarmID(now time.Time) (string, error) {
	randPart, err := randomToken(9)
	if err != nil {
		return "", err
	}
	return "farm_" + now.Format("20060102") + "_" + randPart, nil
}

func randomToken(n int) (string, error) {
	b, err := randomBytes(n)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

func randomSeed() (int64, error) {
	b, err := randomBytes(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b) >> 1), nil
}
