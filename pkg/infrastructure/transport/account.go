package transport

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"storefront/pkg/account/domain/model"
	"storefront/pkg/validation"
)

func (h *handler) signUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, session, err := h.Auth.SignUp(req.toForm())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{Token: token, Session: toSessionResponse(session)})
}

func (h *handler) signIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, session, err := h.Auth.SignIn(req.toForm())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, Session: toSessionResponse(session)})
}

func (h *handler) signOut(w http.ResponseWriter, r *http.Request, session model.Session) {
	if err := h.Auth.SignOut(session); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) currentSession(w http.ResponseWriter, _ *http.Request, session model.Session) {
	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

func (h *handler) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Auth.RequestPasswordReset(validation.ResetPasswordForm{Email: req.Email}); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, messageResponse{
		Title:       "Check your email",
		Description: "If an account exists for this address, a password reset link is on its way",
		Variant:     variantDefault,
	})
}

func (h *handler) getProfile(w http.ResponseWriter, r *http.Request, session model.Session) {
	profile, err := h.Profiles.Profile(session)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (h *handler) updateProfile(w http.ResponseWriter, r *http.Request, session model.Session) {
	var req profileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := h.Profiles.UpdateProfile(session, req.toForm())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (h *handler) changeEmail(w http.ResponseWriter, r *http.Request, session model.Session) {
	var req emailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Profiles.ChangeEmail(session, validation.EmailForm{Email: req.Email}); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) changePassword(w http.ResponseWriter, r *http.Request, session model.Session) {
	var req passwordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Profiles.ChangePassword(session, req.toForm()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) updateNotifications(w http.ResponseWriter, r *http.Request, session model.Session) {
	var req notificationsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := h.Profiles.UpdateNotifications(session, req.toForm())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (h *handler) uploadAvatar(w http.ResponseWriter, r *http.Request, session model.Session) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)
	file, header, err := r.FormFile("avatar")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, model.ErrFileTooLarge)
			return
		}
		writeError(w, r, badRequest(errors.Wrap(err, "read avatar file")))
		return
	}
	defer file.Close()

	avatarURL, err := h.Profiles.UploadAvatar(r.Context(), session, model.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, avatarResponse{AvatarURL: avatarURL})
}

func (h *handler) removeAvatar(w http.ResponseWriter, r *http.Request, session model.Session) {
	if err := h.Profiles.RemoveAvatar(session); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) listAddresses(w http.ResponseWriter, r *http.Request, session model.Session) {
	addresses, err := h.Address.Addresses(session)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := make([]addressResponse, 0, len(addresses))
	for _, a := range addresses {
		resp = append(resp, toAddressResponse(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) addAddress(w http.ResponseWriter, r *http.Request, session model.Session) {
	var req addressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	address, err := h.Address.AddAddress(session, req.toForm())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAddressResponse(*address))
}

func (h *handler) updateAddress(w http.ResponseWriter, r *http.Request, session model.Session) {
	addressID, err := uuidVar(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req addressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	address, err := h.Address.UpdateAddress(session, addressID, req.toForm())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAddressResponse(*address))
}

func (h *handler) removeAddress(w http.ResponseWriter, r *http.Request, session model.Session) {
	addressID, err := uuidVar(r, "id")
	if err == nil {
		err = h.Address.RemoveAddress(session, addressID)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) setDefaultAddress(w http.ResponseWriter, r *http.Request, session model.Session) {
	addressID, err := uuidVar(r, "id")
	if err == nil {
		err = h.Address.SetDefaultAddress(session, addressID)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) listOrders(w http.ResponseWriter, r *http.Request, session model.Session) {
	orders, err := h.Orders.History(session, r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) getOrder(w http.ResponseWriter, r *http.Request, session model.Session) {
	orderID, err := uuidVar(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.Orders.Order(session, orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(*order))
}

func uuidVar(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, badRequest(errors.Wrap(err, name))
	}
	return id, nil
}
