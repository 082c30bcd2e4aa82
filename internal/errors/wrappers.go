package errors

// WrapWithOperation describes a failed step on an item without classifying it
func WrapWithOperation(operation, item string, cause error) *BaseError {
	return Wrapf(UnknownErrorCode, cause, "failed to %s %s", operation, item)
}

// WrapParseError turns a parser failure for item into a SyntaxError
func WrapParseError(item string, cause error) *SyntaxError {
	return &SyntaxError{BaseError: Wrapf(SyntaxErrorCode, cause, "failed to parse %s", item)}
}

// WrapGenerateError attributes cause to the unit being produced and the stage
// it failed in
func WrapGenerateError(unit, stage string, cause error) *GenerationError {
	err := &GenerationError{BaseError: Wrapf(GenerationErrorCode, cause, "failed to generate %s", unit)}
	return err.WithUnit(unit).WithStage(stage)
}

// WrapTemplateError reports a template that failed to parse or execute
func WrapTemplateError(templateName, operation string, cause error) *GenerationError {
	err := &GenerationError{BaseError: Wrapf(TemplateErrorCode, cause, "failed to %s template '%s'", operation, templateName)}
	return err.WithUnit(templateName).WithStage(operation)
}

func withPath(err *BaseError, operation, path string) *BaseError {
	return err.WithContext("operation", operation).WithContext("path", path)
}

// WrapFileSystemError reports a failed read, write, walk or removal of path
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	return withPath(Wrapf(FileSystemErrorCode, cause, "failed to %s file '%s'", operation, path), operation, path)
}

// FileSystemError is WrapFileSystemError without an underlying cause
func FileSystemError(operation, path, message string) *BaseError {
	return withPath(Newf(FileSystemErrorCode, "failed to %s file '%s': %s", operation, path, message), operation, path)
}

// WrapConfigurationError reports a setting that could not be loaded or validated
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	return Wrapf(ConfigurationErrorCode, cause, "failed to %s configuration '%s'", operation, configType).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// ConfigurationError rejects the setting named configType
func ConfigurationError(configType, message string) *BaseError {
	return Newf(ConfigurationErrorCode, "configuration error in '%s': %s", configType, message).
		WithContext("config_type", configType)
}

// WrapCanceled records that a pass stopped because its context ended
func WrapCanceled(stage string, cause error) *BaseError {
	return Wrapf(CanceledErrorCode, cause, "generation canceled during %s", stage)
}

// CodeOf returns the code of the first GeneratorError in err's chain, or
// UnknownErrorCode
func CodeOf(err error) ErrorCode {
	var genErr GeneratorError
	if !As(err, &genErr) {
		return UnknownErrorCode
	}
	return genErr.ErrorCode()
}

// LocationOf returns the first non-empty location found while unwrapping err
func LocationOf(err error) SourceLocation {
	for ; err != nil; err = Unwrap(err) {
		if genErr, ok := err.(GeneratorError); ok && !genErr.Location().IsEmpty() {
			return genErr.Location()
		}
	}
	return SourceLocation{}
}
