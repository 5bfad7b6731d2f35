package echoapi

import (
	"net/http"

	"github.com/dgrijalva/jwt-go"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core"
	"github.com/AxelGHMM/CACE/core/user"
)

var (
	errUnauthorized       = echo.NewHTTPError(http.StatusUnauthorized, "No autorizado")
	errTokenMissing       = echo.NewHTTPError(http.StatusUnauthorized, "Token no proporcionado")
	errTokenExpired       = echo.NewHTTPError(http.StatusUnauthorized, "Token expirado")
	errTokenInvalid       = echo.NewHTTPError(http.StatusUnauthorized, "Token inválido")
	errUserNotFound       = echo.NewHTTPError(http.StatusNotFound, "Usuario no encontrado.")
	errWrongPassword      = echo.NewHTTPError(http.StatusUnauthorized, "Contraseña incorrecta.")
	errAccountDeactivated = echo.NewHTTPError(http.StatusForbidden, "Cuenta desactivada")
	errHttpForbidden      = echo.NewHTTPError(http.StatusForbidden, "Permiso denegado")
	errHttpNotFound       = echo.NewHTTPError(http.StatusNotFound, "No encontrado")

	serverErrMsg = "Error interno del servidor"
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(
	conf *core.Config,
	logger core.Logger,
	translator ut.Translator,
	signalShutdown func(),
) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = errTokenMissing.Code
				message = errTokenMissing.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				} else if vErr, ok := origErr.Internal.(*jwt.ValidationError); ok {
					code = http.StatusUnauthorized
					if vErr.Errors&jwt.ValidationErrorExpired != 0 {
						message = errTokenExpired.Message
					} else {
						message = errTokenInvalid.Message
					}
					break
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default: // any other error is a server error
			code = http.StatusInternalServerError
			message = serverErrMsg

			var usr user.User
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				usr.ID = claims.ID
				usr.Name = claims.Name
				usr.Email = claims.Email
			}
			logger.Error(serverErrMsg, errors.Wrap(err, serverErrMsg), usr)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
